package resp

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
)

// collect 读到错误为止，返回所有完整帧与最终错误
func collect(t *testing.T, reader io.Reader) ([]_interface.Reply, error) {
	t.Helper()
	parser := MakeParser(reader)
	var replies []_interface.Reply
	var lastErr error
	for payload := range parser.ParseStream() {
		if payload.Err != nil {
			lastErr = payload.Err
			break
		}
		replies = append(replies, payload.Data)
	}
	return replies, lastErr
}

func sampleReplies() []_interface.Reply {
	return []_interface.Reply{
		Reply.MakeStatusReply("OK"),
		Reply.MakeErrReply("ERR something went wrong"),
		Reply.MakeIntReply(-42),
		Reply.MakeBulkReply([]byte("hello")),
		Reply.MakeBulkReply([]byte("")),
		Reply.MakeNullBulkReply(),
		Reply.MakeEmptyMultiReply(),
		Reply.MakeNullMultiReply(),
		Reply.StringToMultiReply("message", "ch", "payload"),
		// EXEC风格的混合嵌套
		Reply.MakeMultiReply([]_interface.Reply{
			Reply.MakeStatusReply("OK"),
			Reply.MakeIntReply(7),
			Reply.MakeMultiReply([]_interface.Reply{
				Reply.MakeBulkReply([]byte("nested")),
				Reply.MakeNullBulkReply(),
			}),
		}),
	}
}

func encodeAll(replies []_interface.Reply) []byte {
	var buf bytes.Buffer
	for _, rep := range replies {
		buf.Write(rep.ToBytes())
	}
	return buf.Bytes()
}

func TestParseRoundTrip(t *testing.T) {
	want := sampleReplies()
	got, err := collect(t, bytes.NewReader(encodeAll(want)))
	require.Equal(t, io.EOF, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ToBytes(), got[i].ToBytes(), "frame %d", i)
	}
}

// 逐字节喂入与整段喂入产出一致
func TestParseIncremental(t *testing.T) {
	want := sampleReplies()
	got, err := collect(t, iotest.OneByteReader(bytes.NewReader(encodeAll(want))))
	require.Error(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ToBytes(), got[i].ToBytes(), "frame %d", i)
	}
}

func TestParseTypes(t *testing.T) {
	replies, err := collect(t, bytes.NewReader([]byte("+PONG\r\n:123\r\n$3\r\nfoo\r\n-ERR boom\r\n")))
	require.Equal(t, io.EOF, err)
	require.Len(t, replies, 4)

	status, ok := replies[0].(*Reply.StatusReply)
	require.True(t, ok)
	assert.Equal(t, "PONG", status.Status)

	code, ok := replies[1].(*Reply.IntReply)
	require.True(t, ok)
	assert.Equal(t, int64(123), code.Code)

	bulk, ok := replies[2].(*Reply.BulkReply)
	require.True(t, ok)
	assert.Equal(t, []byte("foo"), bulk.Bulk)

	errRep, ok := replies[3].(*Reply.ErrReply)
	require.True(t, ok)
	assert.Equal(t, "ERR boom", errRep.Status) // 消息原样保留
}

func TestParseNullBulkAndArray(t *testing.T) {
	replies, err := collect(t, bytes.NewReader([]byte("$-1\r\n*-1\r\n$0\r\n\r\n*0\r\n")))
	require.Equal(t, io.EOF, err)
	require.Len(t, replies, 4)

	assert.True(t, replies[0].(*Reply.BulkReply).IsNull())
	assert.True(t, replies[1].(*Reply.MultiReply).IsNull())
	// 空串与null bulk不同
	bulk := replies[2].(*Reply.BulkReply)
	assert.False(t, bulk.IsNull())
	assert.Equal(t, []byte{}, bulk.Bulk)
	multi := replies[3].(*Reply.MultiReply)
	assert.False(t, multi.IsNull())
	assert.Equal(t, 0, multi.Len())
}

func TestParseProtocolErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"illegal type byte", "?what\r\n"},
		{"illegal integer", ":abc\r\n"},
		{"illegal bulk length", "$x\r\nfoo\r\n"},
		{"negative bulk length", "$-2\r\n"},
		{"missing bulk terminator", "$3\r\nfooXY"},
		{"illegal multi header", "*x\r\n"},
		{"line without cr", "+OK\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := collect(t, bytes.NewReader([]byte(tc.input)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrProtocol), "want protocol error, got %v", err)
		})
	}
}

// 帧中途断流只产出完整帧，随后以IO错误收尾
func TestParseTruncatedFrame(t *testing.T) {
	replies, err := collect(t, bytes.NewReader([]byte("+OK\r\n$10\r\npart")))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrProtocol))
	require.Len(t, replies, 1)
}
