package redistest

import (
	"path"
	"sync"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
)

// pubsub channel/pattern到订阅连接的表
type pubsub struct {
	mu       sync.Mutex
	channels map[string]map[*serverConn]struct{}
	patterns map[string]map[*serverConn]struct{}
}

func makePubsub() *pubsub {
	return &pubsub{
		channels: make(map[string]map[*serverConn]struct{}),
		patterns: make(map[string]map[*serverConn]struct{}),
	}
}

// confirmation 订阅类命令的确认帧：[verb, name, count]
func confirmation(verb string, name []byte, count int) _interface.Reply {
	var nameRep _interface.Reply
	if name == nil {
		nameRep = Reply.MakeNullBulkReply()
	} else {
		nameRep = Reply.MakeBulkReply(name)
	}
	return Reply.MakeMultiReply([]_interface.Reply{
		Reply.StringToBulkReply(verb),
		nameRep,
		Reply.MakeIntReply(int64(count)),
	})
}

func (ps *pubsub) subscribe(conn *serverConn, channels [][]byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, raw := range channels {
		channel := string(raw)
		subscribers, ok := ps.channels[channel]
		if !ok {
			subscribers = make(map[*serverConn]struct{})
			ps.channels[channel] = subscribers
		}
		subscribers[conn] = struct{}{}
		conn.subs[channel] = true
		conn.write(confirmation("subscribe", raw, len(conn.subs)+len(conn.psubs)))
	}
}

// unsubscribe 每个channel一条确认；空参数时退订全部，
// 无任何订阅时也回一条count为0的确认
func (ps *pubsub) unsubscribe(conn *serverConn, channels [][]byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(channels) == 0 {
		if len(conn.subs) == 0 {
			conn.write(confirmation("unsubscribe", nil, 0))
			return
		}
		for channel := range conn.subs {
			ps.dropChannel(conn, channel)
			conn.write(confirmation("unsubscribe", []byte(channel), len(conn.subs)+len(conn.psubs)))
		}
		return
	}
	for _, raw := range channels {
		ps.dropChannel(conn, string(raw))
		conn.write(confirmation("unsubscribe", raw, len(conn.subs)+len(conn.psubs)))
	}
}

func (ps *pubsub) psubscribe(conn *serverConn, patterns [][]byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, raw := range patterns {
		pattern := string(raw)
		subscribers, ok := ps.patterns[pattern]
		if !ok {
			subscribers = make(map[*serverConn]struct{})
			ps.patterns[pattern] = subscribers
		}
		subscribers[conn] = struct{}{}
		conn.psubs[pattern] = true
		conn.write(confirmation("psubscribe", raw, len(conn.subs)+len(conn.psubs)))
	}
}

func (ps *pubsub) punsubscribe(conn *serverConn, patterns [][]byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(patterns) == 0 {
		if len(conn.psubs) == 0 {
			conn.write(confirmation("punsubscribe", nil, 0))
			return
		}
		for pattern := range conn.psubs {
			ps.dropPattern(conn, pattern)
			conn.write(confirmation("punsubscribe", []byte(pattern), len(conn.subs)+len(conn.psubs)))
		}
		return
	}
	for _, raw := range patterns {
		ps.dropPattern(conn, string(raw))
		conn.write(confirmation("punsubscribe", raw, len(conn.subs)+len(conn.psubs)))
	}
}

// publish 推送message与匹配pattern的pmessage，返回接收者总数
func (ps *pubsub) publish(channel string, message []byte) int64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	count := int64(0)
	for conn := range ps.channels[channel] {
		conn.write(Reply.MakeMultiReply([]_interface.Reply{
			Reply.StringToBulkReply("message"),
			Reply.StringToBulkReply(channel),
			Reply.MakeBulkReply(message),
		}))
		count++
	}
	for pattern, subscribers := range ps.patterns {
		if matched, _ := path.Match(pattern, channel); !matched {
			continue
		}
		for conn := range subscribers {
			conn.write(Reply.MakeMultiReply([]_interface.Reply{
				Reply.StringToBulkReply("pmessage"),
				Reply.StringToBulkReply(pattern),
				Reply.StringToBulkReply(channel),
				Reply.MakeBulkReply(message),
			}))
			count++
		}
	}
	return count
}

func (ps *pubsub) dropConn(conn *serverConn) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for channel := range conn.subs {
		ps.dropChannel(conn, channel)
	}
	for pattern := range conn.psubs {
		ps.dropPattern(conn, pattern)
	}
}

// dropChannel 调用方已持锁
func (ps *pubsub) dropChannel(conn *serverConn, channel string) {
	delete(conn.subs, channel)
	if subscribers, ok := ps.channels[channel]; ok {
		delete(subscribers, conn)
		if len(subscribers) == 0 {
			delete(ps.channels, channel) // 无任何订阅者，移除该channel
		}
	}
}

func (ps *pubsub) dropPattern(conn *serverConn, pattern string) {
	delete(conn.psubs, pattern)
	if subscribers, ok := ps.patterns[pattern]; ok {
		delete(subscribers, conn)
		if len(subscribers) == 0 {
			delete(ps.patterns, pattern)
		}
	}
}
