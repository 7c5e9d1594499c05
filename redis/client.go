package redis

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/logger"
)

// Client 对外门面。持有一条长连接，未连接时send进入预连接缓冲，
// 并按需发起连接；连接断开后下一次send惰性重连
type Client struct {
	cfg     *Config
	cs      *charset.Charset
	id      string
	subs    *Subscriptions
	bus     *Bus
	metrics *Metrics
	log     *logrus.Entry

	mu         sync.Mutex
	conn       *Connection
	connecting bool
	buffer     []*Command // 预连接缓冲，连接建立后按序排空
	starts     []*Future  // 等待连接结果的Start调用
}

func MakeClient(cfg *Config) (*Client, error) {
	cfg = cfg.withDefaults()
	cs, err := charset.Lookup(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.LogLevel)
	id := uuid.NewString()[:8]
	log := logger.WithFields(map[string]any{"client": id, "server": cfg.Addr()})
	if cfg.Binary {
		log.Warn("binary mode is not implemented yet, option ignored")
	}
	var metrics *Metrics
	if cfg.Metrics {
		metrics = sharedMetrics()
	}
	return &Client{
		cfg:     cfg,
		cs:      cs,
		id:      id,
		subs:    MakeSubscriptions(),
		bus:     MakeBus(),
		metrics: metrics,
		log:     log,
	}, nil
}

// Bus pubsub通知总线，消费者在 address+"."+channel 上挂接handler
func (c *Client) Bus() *Bus {
	return c.bus
}

// Start 立即发起连接，future在socket可用（或失败）时完成
func (c *Client) Start() *Future {
	future := makeFuture(c.cs, transformNone)
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		future.complete(nil, nil)
		return future
	}
	c.starts = append(c.starts, future)
	kick := !c.connecting
	if kick {
		c.connecting = true
	}
	c.mu.Unlock()
	if kick {
		go c.doConnect()
	}
	return future
}

// Stop 优雅断开，剩余飞行中的命令以ErrConnClosed完成
func (c *Client) Stop() *Future {
	future := makeFuture(c.cs, transformNone)
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		conn.Disconnect()
	}
	future.complete(nil, nil)
	return future
}

/* ---- 按返回形态命名的分发入口：行为相同，返回形态由调用方在Future上选用的投影决定 ---- */

func (c *Client) Send(verb string, args ...any) *Future {
	return c.send(verb, args)
}

func (c *Client) SendText(verb string, args ...any) *Future {
	return c.send(verb, args)
}

func (c *Client) SendInt(verb string, args ...any) *Future {
	return c.send(verb, args)
}

func (c *Client) SendVoid(verb string, args ...any) *Future {
	return c.send(verb, args)
}

func (c *Client) SendList(verb string, args ...any) *Future {
	return c.send(verb, args)
}

func (c *Client) SendMap(verb string, args ...any) *Future {
	return c.send(verb, args)
}

// send 所有命令的入口：确定响应变换、订阅类命令的预处理与
// 期望应答数，然后交给连接或预连接缓冲
func (c *Client) send(verb string, args []any) *Future {
	upper := strings.ToUpper(verb)
	future := makeFuture(c.cs, getTransform(upper))
	cmd := makeCommand(verb, future, c.cs, args)

	// subscribe/psubscribe与unsubscribe/punsubscribe的应答条数随参数个数变化
	switch upper {
	case "SUBSCRIBE":
		if len(args) == 0 {
			c.metrics.errorRaised("usage")
			future.complete(nil, usageError("at least one channel is required"))
			return future
		}
		cmd.expected = len(args)
		for _, arg := range args {
			channel := c.argString(arg)
			address := c.cfg.Address + "." + channel
			c.subs.RegisterChannel(channel, func(ch string, message []byte) {
				c.bus.Publish(address, Notification{
					Status: "ok",
					Value:  NotificationValue{Channel: ch, Message: c.cs.Decode(message)},
				})
			})
		}
	case "PSUBSCRIBE":
		if len(args) == 0 {
			c.metrics.errorRaised("usage")
			future.complete(nil, usageError("at least one pattern is required"))
			return future
		}
		cmd.expected = len(args)
		for _, arg := range args {
			pattern := c.argString(arg)
			address := c.cfg.Address + "." + pattern
			c.subs.RegisterPattern(pattern, func(pat string, ch string, message []byte) {
				c.bus.Publish(address, Notification{
					Status: "ok",
					Value:  NotificationValue{Pattern: pat, Channel: ch, Message: c.cs.Decode(message)},
				})
			})
		}
	case "UNSUBSCRIBE":
		if len(args) == 0 {
			// 全量退订，期望应答数取当前channel表大小
			cmd.expected = c.subs.ChannelSize()
			c.subs.UnregisterAllChannels()
		} else {
			cmd.expected = len(args)
			for _, arg := range args {
				c.subs.UnregisterChannel(c.argString(arg))
			}
		}
	case "PUNSUBSCRIBE":
		if len(args) == 0 {
			cmd.expected = c.subs.PatternSize()
			c.subs.UnregisterAllPatterns()
		} else {
			cmd.expected = len(args)
			for _, arg := range args {
				c.subs.UnregisterPattern(c.argString(arg))
			}
		}
	}

	c.doSend(cmd)
	return future
}

// doSend 已连接时直接写出；否则入缓冲并按需发起连接
func (c *Client) doSend(cmd *Command) {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Send(cmd) // 持锁写出，保证与缓冲排空之间的顺序
		c.mu.Unlock()
		return
	}
	c.buffer = append(c.buffer, cmd)
	kick := !c.connecting
	if kick {
		c.connecting = true
	}
	c.mu.Unlock()
	if kick {
		go c.doConnect()
	}
}

func (c *Client) doConnect() {
	conn, err := makeConnection(c.cfg.Addr(), c.cs, c.subs, c.metrics, c.log)
	c.mu.Lock()
	c.connecting = false
	buffered := c.buffer
	c.buffer = nil
	starts := c.starts
	c.starts = nil
	if err != nil {
		c.mu.Unlock()
		c.metrics.errorRaised("connect")
		c.log.Warn("connect failed: ", err)
		werr := connectError(err)
		for _, cmd := range buffered {
			cmd.future.complete(nil, werr)
		}
		for _, future := range starts {
			future.complete(nil, werr)
		}
		return
	}
	conn.onClose = func(byPeer bool) {
		c.connDown(conn, byPeer)
	}
	c.conn = conn
	for _, cmd := range buffered {
		conn.Send(cmd) // 按缓冲顺序排空
	}
	conn.start()
	c.mu.Unlock()
	c.log.Info("connected")
	for _, future := range starts {
		future.complete(nil, nil)
	}
}

// connDown 连接退出后的收尾。订阅表刻意保留：重连后是否重订阅由调用方决定
func (c *Client) connDown(from *Connection, byPeer bool) {
	c.mu.Lock()
	if c.conn == from {
		c.conn = nil
	}
	c.mu.Unlock()
	if byPeer {
		c.log.Warn("connection has been closed by peer")
	}
}

// getTransform verb已归一化为大写
func getTransform(verb string) transform {
	switch verb {
	case "HGETALL":
		return transformHGetAll
	case "INFO":
		return transformInfo
	}
	return transformNone
}

func (c *Client) argString(arg any) string {
	if s, ok := arg.(string); ok {
		return s
	}
	return c.cs.Decode(argBytes(c.cs, arg))
}
