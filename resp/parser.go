package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/logger"
)

// ErrProtocol 字节流不符合RESP语法，属于致命错误，连接随之关闭
var ErrProtocol = errors.New("protocol error")

type Payload struct {
	Data _interface.Reply
	Err  error
}

// Parser 增量式RESP解码器。bufio在读满一帧前保持内部位置，
// 因此字节分批到达时解析可以自然续接
type Parser struct {
	reader *bufio.Reader
	ch     chan *Payload
}

func MakeParser(reader io.Reader) *Parser {
	return &Parser{
		reader: bufio.NewReader(reader),
		ch:     make(chan *Payload),
	}
}

// ParseStream 启动解析goroutine，每解出一个完整顶层帧发送一个Payload；
// 出现IO错误或协议错误后发送错误并关闭channel
func (parser *Parser) ParseStream() <-chan *Payload {
	go parser.parseRESP()
	return parser.ch
}

func (parser *Parser) parseRESP() {
	// 异常处理
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
		}
	}()
	// parsing
	for {
		rep, err := parser.parseOne()
		if err != nil {
			parser.ch <- &Payload{Err: err}
			close(parser.ch)
			return // 出现错误，终止
		}
		parser.ch <- &Payload{Data: rep}
	}
}

// 解析一个完整的帧，数组递归下降
func (parser *Parser) parseOne() (_interface.Reply, error) {
	line, err := parser.readLine()
	if err != nil {
		return nil, err
	}
	switch line[0] {
	case '+':
		// 简单字符串(Simple String)
		return Reply.MakeStatusReply(string(line[1:])), nil
	case '-':
		// 错误信息(Error)
		return Reply.MakeErrReply(string(line[1:])), nil
	case ':':
		// 整数(Integer)
		code, err := strconv.ParseInt(string(line[1:]), 10, 64)
		if err != nil {
			return nil, protocolError("illegal integer '" + string(line[1:]) + "'")
		}
		return Reply.MakeIntReply(code), nil
	case '$':
		// 字符串(Bulk String)
		return parser.parseBulkString(line)
	case '*':
		// 数组(Multi Bulk)
		return parser.parseMulti(line)
	default:
		return nil, protocolError("illegal type byte '" + string(line[:1]) + "'")
	}
}

// 读取一行，要求以CRLF结尾，返回去掉CRLF的内容
func (parser *Parser) readLine() ([]byte, error) {
	line, err := parser.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	length := len(line)
	if length < 3 || line[length-2] != '\r' {
		return nil, protocolError("illegal line '" + string(bytes.TrimSuffix(line, []byte{'\n'})) + "'")
	}
	return line[:length-2], nil
}

func (parser *Parser) parseBulkString(header []byte) (_interface.Reply, error) {
	size, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || size < -1 {
		return nil, protocolError("illegal bulk string header '" + string(header) + "'")
	}
	if size == -1 {
		return Reply.MakeNullBulkReply(), nil // Null Bulk String
	}
	body := make([]byte, size+2) // 正文长度+CRLF的长度
	if _, err = io.ReadFull(parser.reader, body); err != nil {
		return nil, err
	}
	if body[size] != '\r' || body[size+1] != '\n' {
		return nil, protocolError("bulk string of declared length " + strconv.FormatInt(size, 10) + " has no terminator")
	}
	return Reply.MakeBulkReply(body[:size]), nil
}

func (parser *Parser) parseMulti(header []byte) (_interface.Reply, error) {
	size, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || size < -1 {
		return nil, protocolError("illegal multi bulk header '" + string(header) + "'")
	}
	if size == -1 {
		return Reply.MakeNullMultiReply(), nil // Null Array
	}
	replies := make([]_interface.Reply, 0, size)
	for i := int64(0); i < size; i++ {
		rep, err := parser.parseOne() // 子帧递归解析
		if err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	return Reply.MakeMultiReply(replies), nil
}

func protocolError(msg string) error {
	return fmt.Errorf("%w: %s", ErrProtocol, msg)
}
