package redis

import (
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	"github.com/Ashwin-Surana/vertx-redis-client/resp"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
	_sync "github.com/Ashwin-Surana/vertx-redis-client/utils/sync"
)

// Connection 持有TCP socket、pending队列与订阅表的引用。
// 读goroutine把每个应答要么交给pending队头，要么按pubsub推送路由
type Connection struct {
	conn    net.Conn
	cs      *charset.Charset
	subs    *Subscriptions
	metrics *Metrics
	onClose func(byPeer bool) // 连接退出时回调（排空pending之后）
	log     *logrus.Entry
	wait    _sync.Wait    // 等待读循环退出
	closing _sync.Boolean // 主动断开标志

	mu      sync.Mutex // 保护conn写、pending与dead
	pending []*Command // 飞行中的命令，严格FIFO
	dead    bool
}

// makeConnection 建立socket。读循环由start()启动，调用方先挂好onClose
func makeConnection(addr string, cs *charset.Charset, subs *Subscriptions,
	metrics *Metrics, log *logrus.Entry) (*Connection, error) {
	tcpConn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Connection{
		conn:    tcpConn,
		cs:      cs,
		subs:    subs,
		metrics: metrics,
		log:     log,
	}, nil
}

func (conn *Connection) start() {
	conn.wait.Add(1)
	go conn.readLoop()
}

// Send 序列化并写出一条命令。写出按Send调用顺序进行；
// 命令在最后一个字节离开前就已入队，任何可能的应答都能找到它
func (conn *Connection) Send(cmd *Command) {
	conn.mu.Lock()
	if conn.dead {
		conn.mu.Unlock()
		cmd.future.complete(nil, ErrConnClosed)
		return
	}
	if cmd.expected > 0 {
		conn.pending = append(conn.pending, cmd)
		conn.metrics.pendingInc()
	}
	_, err := conn.conn.Write(cmd.Bytes())
	conn.mu.Unlock()
	conn.metrics.commandSent(cmd.verb)
	if err != nil {
		// 写失败视为连接已坏，关闭socket，由读循环统一排空pending
		conn.log.WithField("verb", cmd.verb).Warn("write failed: ", err)
		conn.mu.Lock()
		if !conn.dead {
			_ = conn.conn.Close()
		}
		conn.mu.Unlock()
		if cmd.expected == 0 {
			// 未入队的命令不会被读循环排空，在此完成
			cmd.future.complete(nil, ErrConnClosed)
		}
		return
	}
	if cmd.expected == 0 {
		// 期望0条应答的命令（空订阅表上的unsubscribe），写出即完成
		cmd.future.complete(nil, nil)
	}
}

// Disconnect 主动关闭，等待读循环退出、pending排空，最多10秒
func (conn *Connection) Disconnect() {
	conn.closing.Set(true)
	conn.mu.Lock()
	if !conn.dead {
		_ = conn.conn.Close()
	}
	conn.mu.Unlock()
	if conn.wait.WaitWithTimeout(10 * time.Second) {
		conn.log.Warn("timed out waiting for read loop to exit")
	}
}

func (conn *Connection) readLoop() {
	defer conn.wait.Done()
	parser := resp.MakeParser(conn.conn)
	ch := parser.ParseStream()
	for payload := range ch {
		if payload.Err != nil {
			// EOF、IO错误、协议错误一律终止连接
			if !conn.closing.Get() {
				conn.log.Warn("read loop ended: ", payload.Err)
			}
			break
		}
		conn.dispatch(payload.Data)
	}
	conn.teardown(!conn.closing.Get())
}

// dispatch 应答分发：message/pmessage推送走订阅表，其余按FIFO交给pending队头
func (conn *Connection) dispatch(rep _interface.Reply) {
	if conn.routePush(rep) {
		return
	}
	conn.mu.Lock()
	if len(conn.pending) == 0 {
		conn.mu.Unlock()
		// 没有等待者的应答（如空订阅表上unsubscribe的确认），丢弃
		conn.log.Warn("reply with no pending command, discarded: ", string(rep.ToBytes()))
		return
	}
	head := conn.pending[0]
	head.expected--
	if head.expected > 0 {
		conn.mu.Unlock()
		conn.metrics.replyReceived()
		return // 同一逻辑命令还差若干条确认
	}
	conn.pending = conn.pending[1:]
	conn.mu.Unlock()
	conn.metrics.replyReceived()
	conn.metrics.pendingDec()
	head.future.complete(rep, nil)
}

// routePush 识别服务端推送：["message", channel, payload]或
// ["pmessage", pattern, channel, payload]，不消费pending
func (conn *Connection) routePush(rep _interface.Reply) bool {
	multi, ok := rep.(*Reply.MultiReply)
	if !ok || multi.IsNull() {
		return false
	}
	elements := multi.Replies
	if len(elements) < 3 {
		return false
	}
	first, ok := elements[0].(*Reply.BulkReply)
	if !ok || first.IsNull() {
		return false
	}
	switch string(first.Bulk) {
	case "message":
		if len(elements) != 3 {
			return false
		}
		channel := conn.bulkText(elements[1])
		hits := conn.subs.DispatchChannel(channel, conn.bulkBytes(elements[2]))
		conn.metrics.pushRouted(hits > 0)
		if hits == 0 {
			conn.log.Debug("message on channel '", channel, "' has no handler, discarded")
		}
		return true
	case "pmessage":
		if len(elements) != 4 {
			return false
		}
		pattern := conn.bulkText(elements[1])
		channel := conn.bulkText(elements[2])
		hits := conn.subs.DispatchPattern(pattern, channel, conn.bulkBytes(elements[3]))
		conn.metrics.pushRouted(hits > 0)
		if hits == 0 {
			conn.log.Debug("pmessage on pattern '", pattern, "' has no handler, discarded")
		}
		return true
	}
	return false
}

// teardown 关闭socket并按FIFO顺序以ErrConnClosed完成全部pending，幂等
func (conn *Connection) teardown(byPeer bool) {
	conn.mu.Lock()
	if conn.dead {
		conn.mu.Unlock()
		return
	}
	conn.dead = true
	_ = conn.conn.Close()
	drained := conn.pending
	conn.pending = nil
	conn.mu.Unlock()
	for _, cmd := range drained {
		conn.metrics.pendingDec()
		conn.metrics.errorRaised("conn_closed")
		cmd.future.complete(nil, ErrConnClosed)
	}
	if conn.onClose != nil {
		conn.onClose(byPeer)
	}
}

func (conn *Connection) bulkText(rep _interface.Reply) string {
	if bulk, ok := rep.(*Reply.BulkReply); ok && !bulk.IsNull() {
		return conn.cs.Decode(bulk.Bulk)
	}
	return ""
}

func (conn *Connection) bulkBytes(rep _interface.Reply) []byte {
	if bulk, ok := rep.(*Reply.BulkReply); ok {
		return bulk.Bulk
	}
	return nil
}
