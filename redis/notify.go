package redis

import "sync"

// NotificationValue 推送内容。channel消息不带Pattern字段
type NotificationValue struct {
	Pattern string `json:"pattern,omitempty"`
	Channel string `json:"channel"`
	Message string `json:"message"`
}

// Notification 送往通知地址的载荷，与原有消费者约定保持一致
type Notification struct {
	Status string            `json:"status"`
	Value  NotificationValue `json:"value"`
}

// BusHandler 通知消费者回调
type BusHandler func(Notification)

// Bus 进程内通知总线。pubsub消息按 address+"."+channel（或pattern）投递，
// 消费者用完整地址挂接handler
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]BusHandler
}

func MakeBus() *Bus {
	return &Bus{
		handlers: make(map[string][]BusHandler),
	}
}

// Handle 在address上挂接一个handler
func (bus *Bus) Handle(address string, handler BusHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[address] = append(bus.handlers[address], handler)
}

// Unhandle 摘除address上的全部handler
func (bus *Bus) Unhandle(address string) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.handlers, address)
}

// Publish 同步投递，调用发生在连接的读goroutine上，保序
func (bus *Bus) Publish(address string, notification Notification) int {
	bus.mu.RLock()
	handlers := bus.handlers[address]
	bus.mu.RUnlock()
	for _, handler := range handlers {
		handler(notification)
	}
	return len(handlers)
}
