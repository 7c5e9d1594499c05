package redis

import (
	"errors"
	"fmt"
)

/* ---- 错误分类 ---- */

var (
	// ErrConnect TCP连接建立失败
	ErrConnect = errors.New("redis: connect failed")
	// ErrConnClosed 对端关闭或本地IO错误，飞行中的命令按FIFO顺序收到该错误
	ErrConnClosed = errors.New("redis: connection closed")
	// ErrUsage 调用方式错误，如subscribe不带参数，不触碰socket
	ErrUsage = errors.New("redis: usage error")
	// ErrTimeout 等待future超时（仅限带超时的等待入口）
	ErrTimeout = errors.New("redis: wait timeout")
)

// ServerError 服务端的'-'应答，消息原样透出，不影响其他飞行中的命令
type ServerError string

func (e ServerError) Error() string {
	return string(e)
}

func connectError(cause error) error {
	return fmt.Errorf("%w: %v", ErrConnect, cause)
}

func usageError(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}
