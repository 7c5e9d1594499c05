package reply

import (
	"bytes"
	"strconv"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
)

var CRLF = "\r\n" // RESP定义的换行符

/* ---- Status (Simple String) ---- */

type StatusReply struct {
	Status string
}

func MakeStatusReply(status string) *StatusReply {
	return &StatusReply{
		Status: status,
	}
}

func (r *StatusReply) ToBytes() []byte {
	return []byte("+" + r.Status + CRLF)
}

/* ---- Error ---- */

// ErrReply 服务端返回的错误，消息原样保留
type ErrReply struct {
	Status string
}

func MakeErrReply(status string) *ErrReply {
	return &ErrReply{
		Status: status,
	}
}

func (r *ErrReply) ToBytes() []byte {
	return []byte("-" + r.Status + CRLF)
}

func (r *ErrReply) Error() string {
	return r.Status
}

/* ---- Integer ---- */

type IntReply struct {
	Code int64
}

func MakeIntReply(code int64) *IntReply {
	return &IntReply{
		Code: code,
	}
}

func (r *IntReply) ToBytes() []byte {
	return []byte(":" + strconv.FormatInt(r.Code, 10) + CRLF)
}

/* ---- Bulk String ---- */

// BulkReply Bulk为nil时表示null bulk($-1)，区别于空串
type BulkReply struct {
	Bulk []byte
}

func MakeBulkReply(arg []byte) *BulkReply {
	return &BulkReply{
		Bulk: arg,
	}
}

func MakeNullBulkReply() *BulkReply {
	return &BulkReply{}
}

func (r *BulkReply) IsNull() bool {
	return r.Bulk == nil
}

func (r *BulkReply) ToBytes() []byte {
	if r.Bulk == nil {
		return []byte("$-1" + CRLF)
	}
	return []byte("$" + strconv.Itoa(len(r.Bulk)) + CRLF + string(r.Bulk) + CRLF)
}

/* ---- Array (Multi Bulk Strings) ---- */

// ArrayReply 扁平的bulk数组，用于编码出站命令
type ArrayReply struct {
	Args [][]byte
}

func MakeArrayReply(args [][]byte) *ArrayReply {
	return &ArrayReply{
		Args: args,
	}
}

func (r *ArrayReply) ToBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.Args)) + CRLF)
	for _, arg := range r.Args {
		if arg == nil {
			buf.WriteString("$-1" + CRLF)
		} else {
			buf.WriteString("$" + strconv.Itoa(len(arg)) + CRLF + string(arg) + CRLF)
		}
	}
	return buf.Bytes()
}

/* ---- Multi Reply ---- */

// MultiReply 任意嵌套的数组，null为true时表示null array(*-1)，区别于空数组
type MultiReply struct {
	Replies []_interface.Reply
	null    bool
}

func MakeMultiReply(replies []_interface.Reply) *MultiReply {
	return &MultiReply{
		Replies: replies,
	}
}

func MakeNullMultiReply() *MultiReply {
	return &MultiReply{
		null: true,
	}
}

func MakeEmptyMultiReply() *MultiReply {
	return &MultiReply{
		Replies: make([]_interface.Reply, 0),
	}
}

func (r *MultiReply) IsNull() bool {
	return r.null
}

func (r *MultiReply) Len() int {
	return len(r.Replies)
}

func (r *MultiReply) ToBytes() []byte {
	if r.null {
		return []byte("*-1" + CRLF)
	}
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.Replies)) + CRLF)
	for _, rep := range r.Replies {
		buf.Write(rep.ToBytes())
	}
	return buf.Bytes()
}
