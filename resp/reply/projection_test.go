package reply

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
)

func utf8(t *testing.T) *charset.Charset {
	t.Helper()
	cs, err := charset.Lookup("UTF-8")
	require.NoError(t, err)
	return cs
}

func TestAsText(t *testing.T) {
	cs := utf8(t)

	text, err := AsText(MakeStatusReply("OK"), cs)
	require.NoError(t, err)
	assert.Equal(t, "OK", *text)

	text, err = AsText(MakeBulkReply([]byte("héllo")), cs)
	require.NoError(t, err)
	assert.Equal(t, "héllo", *text)

	// null bulk投影为nil
	text, err = AsText(MakeNullBulkReply(), cs)
	require.NoError(t, err)
	assert.Nil(t, text)

	// 整数按十进制渲染
	text, err = AsText(MakeIntReply(-7), cs)
	require.NoError(t, err)
	assert.Equal(t, "-7", *text)

	_, err = AsText(MakeEmptyMultiReply(), cs)
	assert.True(t, errors.Is(err, ErrProjection))
}

func TestAsInt(t *testing.T) {
	code, err := AsInt(MakeIntReply(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), code)

	code, err = AsInt(MakeBulkReply([]byte("-13")))
	require.NoError(t, err)
	assert.Equal(t, int64(-13), code)

	code, err = AsInt(MakeStatusReply("7"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), code)

	_, err = AsInt(MakeBulkReply([]byte("abc")))
	assert.True(t, errors.Is(err, ErrProjection))
	_, err = AsInt(MakeNullBulkReply())
	assert.True(t, errors.Is(err, ErrProjection))
}

func TestAsList(t *testing.T) {
	cs := utf8(t)
	multi := MakeMultiReply([]_interface.Reply{
		MakeBulkReply([]byte("a")),
		MakeNullBulkReply(),
		MakeIntReply(3),
	})
	list, err := AsList(multi, cs)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", *list[0])
	assert.Nil(t, list[1]) // null保留
	assert.Equal(t, "3", *list[2])

	list, err = AsList(MakeNullMultiReply(), cs)
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = AsList(MakeStatusReply("OK"), cs)
	assert.True(t, errors.Is(err, ErrProjection))
}

func TestAsMap(t *testing.T) {
	cs := utf8(t)
	multi := StringToMultiReply("f1", "Hello", "f2", "World")
	m, err := AsMap(multi, cs)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"f1": "Hello", "f2": "World"}, m)

	// 奇数长度报投影错误
	_, err = AsMap(StringToMultiReply("f1", "v1", "dangling"), cs)
	assert.True(t, errors.Is(err, ErrProjection))

	_, err = AsMap(MakeIntReply(1), cs)
	assert.True(t, errors.Is(err, ErrProjection))
}

func TestEncodeShapes(t *testing.T) {
	assert.Equal(t, []byte("+OK\r\n"), MakeOkReply().ToBytes())
	assert.Equal(t, []byte("$-1\r\n"), MakeNullBulkReply().ToBytes())
	assert.Equal(t, []byte("*-1\r\n"), MakeNullMultiReply().ToBytes())
	assert.Equal(t, []byte("*2\r\n$3\r\nget\r\n$1\r\nk\r\n"),
		MakeArrayReply([][]byte{[]byte("get"), []byte("k")}).ToBytes())
}
