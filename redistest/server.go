// Package redistest 内嵌的迷你RESP服务端，供端到端测试使用，
// 实现客户端测试所需的命令子集
package redistest

import (
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	"github.com/Ashwin-Surana/vertx-redis-client/resp"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/logger"
	_sync "github.com/Ashwin-Surana/vertx-redis-client/utils/sync"
)

type Server struct {
	listener net.Listener
	store    *store
	pubsub   *pubsub
	closing  _sync.Boolean
	conns    sync.Map // *serverConn -> placeholder
	wait     sync.WaitGroup
}

// serverConn 单个客户端连接及其multi/订阅状态
type serverConn struct {
	conn    net.Conn
	mu      sync.Mutex // 保护写，pubsub推送与应答可能并发
	inMulti bool
	queued  [][][]byte
	subs    map[string]bool
	psubs   map[string]bool
}

func (c *serverConn) write(rep _interface.Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.conn.Write(rep.ToBytes())
}

// StartServer 在127.0.0.1的随机端口上启动
func StartServer() (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	server := &Server{
		listener: listener,
		store:    makeStore(),
		pubsub:   makePubsub(),
	}
	server.wait.Add(1)
	go server.acceptLoop()
	return server, nil
}

func (server *Server) Addr() string {
	return server.listener.Addr().String()
}

func (server *Server) Host() string {
	host, _, _ := net.SplitHostPort(server.Addr())
	return host
}

func (server *Server) Port() int {
	addr := server.listener.Addr().(*net.TCPAddr)
	return addr.Port
}

// Close 停止accept并关闭全部连接
func (server *Server) Close() {
	server.closing.Set(true)
	_ = server.listener.Close()
	server.conns.Range(func(key any, val any) bool {
		conn := key.(*serverConn)
		_ = conn.conn.Close()
		return true
	})
	server.wait.Wait()
}

// CloseConns 仅踢掉已建立的连接，listener保留。用于测试对端关闭
func (server *Server) CloseConns() {
	server.conns.Range(func(key any, val any) bool {
		conn := key.(*serverConn)
		_ = conn.conn.Close()
		return true
	})
}

func (server *Server) acceptLoop() {
	defer server.wait.Done()
	for {
		tcpConn, err := server.listener.Accept()
		if err != nil {
			if !server.closing.Get() {
				logger.Warn("redistest accept error: ", err)
			}
			return
		}
		server.wait.Add(1)
		go server.handle(tcpConn)
	}
}

// handle 逐帧解析命令并执行，连接断开时清理订阅
func (server *Server) handle(tcpConn net.Conn) {
	defer server.wait.Done()
	conn := &serverConn{
		conn:  tcpConn,
		subs:  make(map[string]bool),
		psubs: make(map[string]bool),
	}
	server.conns.Store(conn, struct{}{})
	defer func() {
		server.pubsub.dropConn(conn)
		server.conns.Delete(conn)
		_ = tcpConn.Close()
	}()

	parser := resp.MakeParser(tcpConn)
	for payload := range parser.ParseStream() {
		if payload.Err != nil {
			return
		}
		cmdline, ok := toCmdLine(payload.Data)
		if !ok {
			conn.write(Reply.MakeErrReply("ERR Protocol error: expected multi bulk"))
			continue
		}
		if rep := server.exec(conn, cmdline); rep != nil {
			conn.write(rep)
		}
	}
}

// toCmdLine 入站命令应为bulk数组
func toCmdLine(rep _interface.Reply) ([][]byte, bool) {
	multi, ok := rep.(*Reply.MultiReply)
	if !ok || multi.IsNull() || multi.Len() == 0 {
		return nil, false
	}
	line := make([][]byte, 0, multi.Len())
	for _, element := range multi.Replies {
		bulk, ok := element.(*Reply.BulkReply)
		if !ok || bulk.IsNull() {
			return nil, false
		}
		line = append(line, bulk.Bulk)
	}
	return line, true
}

// exec 命令分发。subscribe族自行写应答，返回nil
func (server *Server) exec(conn *serverConn, cmdline [][]byte) _interface.Reply {
	verb := strings.ToUpper(string(cmdline[0]))

	// multi状态下除控制命令外全部排队
	if conn.inMulti && verb != "EXEC" && verb != "DISCARD" && verb != "MULTI" {
		conn.queued = append(conn.queued, cmdline)
		return Reply.MakeQueuedReply()
	}

	switch verb {
	case "MULTI":
		conn.inMulti = true
		conn.queued = nil
		return Reply.MakeOkReply()
	case "EXEC":
		if !conn.inMulti {
			return Reply.MakeErrReply("ERR EXEC without MULTI")
		}
		conn.inMulti = false
		results := make([]_interface.Reply, 0, len(conn.queued))
		for _, queued := range conn.queued {
			rep := server.execSingle(conn, queued)
			if rep == nil {
				rep = Reply.MakeNullBulkReply()
			}
			results = append(results, rep)
		}
		conn.queued = nil
		return Reply.MakeMultiReply(results)
	case "DISCARD":
		conn.inMulti = false
		conn.queued = nil
		return Reply.MakeOkReply()
	}
	return server.execSingle(conn, cmdline)
}

func (server *Server) execSingle(conn *serverConn, cmdline [][]byte) _interface.Reply {
	verb := strings.ToUpper(string(cmdline[0]))
	args := cmdline[1:]
	server.store.commandProcessed()

	switch verb {
	case "PING":
		if len(args) == 1 {
			return Reply.MakeBulkReply(args[0])
		}
		return Reply.MakePongReply()
	case "ECHO":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return Reply.MakeBulkReply(args[0])
	case "SELECT", "AUTH":
		return Reply.MakeOkReply()
	case "DEBUG":
		// DEBUG SLEEP用于测试中制造飞行中的命令
		if len(args) == 2 && strings.ToUpper(string(args[0])) == "SLEEP" {
			if seconds, err := strconv.ParseFloat(string(args[1]), 64); err == nil {
				time.Sleep(time.Duration(seconds * float64(time.Second)))
			}
		}
		return Reply.MakeOkReply()
	case "INFO":
		return server.store.info()
	case "FLUSHALL", "FLUSHDB":
		server.store.flush()
		return Reply.MakeOkReply()
	case "SUBSCRIBE":
		if len(args) == 0 {
			return argNumErr(verb)
		}
		server.pubsub.subscribe(conn, args)
		return nil
	case "UNSUBSCRIBE":
		server.pubsub.unsubscribe(conn, args)
		return nil
	case "PSUBSCRIBE":
		if len(args) == 0 {
			return argNumErr(verb)
		}
		server.pubsub.psubscribe(conn, args)
		return nil
	case "PUNSUBSCRIBE":
		server.pubsub.punsubscribe(conn, args)
		return nil
	case "PUBLISH":
		if len(args) != 2 {
			return argNumErr(verb)
		}
		count := server.pubsub.publish(string(args[0]), args[1])
		return Reply.MakeIntReply(count)
	}
	return server.store.exec(verb, args)
}

func argNumErr(verb string) _interface.Reply {
	return Reply.MakeErrReply("ERR wrong number of arguments for '" + strings.ToLower(verb) + "' command")
}
