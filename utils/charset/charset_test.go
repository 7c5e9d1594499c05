package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupUTF8(t *testing.T) {
	cs, err := Lookup("UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "héllo", cs.Decode([]byte("héllo")))
	assert.Equal(t, []byte("héllo"), cs.Encode("héllo"))
}

func TestLookupLatin1(t *testing.T) {
	cs, err := Lookup("ISO-8859-1")
	require.NoError(t, err)
	// 0xE9为latin-1的é
	assert.Equal(t, "é", cs.Decode([]byte{0xE9}))
	assert.Equal(t, []byte{0xE9}, cs.Encode("é"))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-encoding")
	assert.Error(t, err)
}
