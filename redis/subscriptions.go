package redis

import "sync"

// ChannelHandler 收到channel消息时的回调，message为原始字节
type ChannelHandler func(channel string, message []byte)

// PatternHandler 收到pattern消息时的回调
type PatternHandler func(pattern string, channel string, message []byte)

// Subscriptions channel与pattern两张表，key到handler列表。
// 注册发生在subscribe发出时（应答到达之前），保证第一条推送不丢
type Subscriptions struct {
	mu       sync.Mutex
	channels map[string][]ChannelHandler
	patterns map[string][]PatternHandler
}

func MakeSubscriptions() *Subscriptions {
	return &Subscriptions{
		channels: make(map[string][]ChannelHandler),
		patterns: make(map[string][]PatternHandler),
	}
}

func (subs *Subscriptions) RegisterChannel(channel string, handler ChannelHandler) {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	subs.channels[channel] = append(subs.channels[channel], handler)
}

func (subs *Subscriptions) RegisterPattern(pattern string, handler PatternHandler) {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	subs.patterns[pattern] = append(subs.patterns[pattern], handler)
}

// UnregisterChannel 摘除一个channel的全部handler
func (subs *Subscriptions) UnregisterChannel(channel string) {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	delete(subs.channels, channel)
}

// UnregisterAllChannels 清空channel表
func (subs *Subscriptions) UnregisterAllChannels() {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	subs.channels = make(map[string][]ChannelHandler)
}

func (subs *Subscriptions) UnregisterPattern(pattern string) {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	delete(subs.patterns, pattern)
}

func (subs *Subscriptions) UnregisterAllPatterns() {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	subs.patterns = make(map[string][]PatternHandler)
}

// ChannelSize channel表大小，unsubscribe不带参数时据此计算期望应答数
func (subs *Subscriptions) ChannelSize() int {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	return len(subs.channels)
}

func (subs *Subscriptions) PatternSize() int {
	subs.mu.Lock()
	defer subs.mu.Unlock()
	return len(subs.patterns)
}

// DispatchChannel 将message推送交给channel下注册的全部handler，返回命中个数
func (subs *Subscriptions) DispatchChannel(channel string, message []byte) int {
	subs.mu.Lock()
	handlers := subs.channels[channel]
	subs.mu.Unlock()
	for _, handler := range handlers {
		handler(channel, message)
	}
	return len(handlers)
}

// DispatchPattern 将pmessage推送交给pattern下注册的全部handler
func (subs *Subscriptions) DispatchPattern(pattern string, channel string, message []byte) int {
	subs.mu.Lock()
	handlers := subs.patterns[pattern]
	subs.mu.Unlock()
	for _, handler := range handlers {
		handler(pattern, channel, message)
	}
	return len(handlers)
}
