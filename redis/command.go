package redis

import (
	"fmt"
	"strconv"

	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
)

// Command 一次出站请求：verb、编码后的参数、期望的应答条数与结果future。
// expected默认为1，subscribe族命令由Client在send时改写（见client.go）
type Command struct {
	verb     string
	args     [][]byte
	expected int
	future   *Future
}

func makeCommand(verb string, future *Future, cs *charset.Charset, args []any) *Command {
	encoded := make([][]byte, len(args))
	for i, arg := range args {
		encoded[i] = argBytes(cs, arg)
	}
	return &Command{
		verb:     verb,
		args:     encoded,
		expected: 1,
		future:   future,
	}
}

// Bytes 序列化为RESP请求：k+1个bulk组成的数组，verb在前
func (cmd *Command) Bytes() []byte {
	line := make([][]byte, 0, len(cmd.args)+1)
	line = append(line, []byte(cmd.verb))
	line = append(line, cmd.args...)
	return Reply.MakeArrayReply(line).ToBytes()
}

// argBytes 参数编码：字节串透传，数字十进制，其余经charset编码
func argBytes(cs *charset.Charset, arg any) []byte {
	switch v := arg.(type) {
	case []byte:
		return v
	case string:
		return cs.Encode(v)
	case int:
		return []byte(strconv.Itoa(v))
	case int64:
		return []byte(strconv.FormatInt(v, 10))
	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return cs.Encode(fmt.Sprint(v))
	}
}
