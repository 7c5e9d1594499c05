package redis

/* ---- pub/sub ---- */

// Subscribe 订阅channel。handler在send时就已注册，
// 因此确认应答之前到达的第一条推送也不会丢
func (c *Client) Subscribe(channels ...string) *Future {
	return c.SendVoid("subscribe", toAny(channels)...)
}

// PSubscribe 按glob pattern订阅
func (c *Client) PSubscribe(patterns ...string) *Future {
	return c.SendVoid("psubscribe", toAny(patterns)...)
}

// Unsubscribe 不带参数时退订全部channel
func (c *Client) Unsubscribe(channels ...string) *Future {
	return c.SendVoid("unsubscribe", toAny(channels)...)
}

// PUnsubscribe 不带参数时退订全部pattern
func (c *Client) PUnsubscribe(patterns ...string) *Future {
	return c.SendVoid("punsubscribe", toAny(patterns)...)
}

func (c *Client) Publish(channel string, message string) *Future {
	return c.SendInt("publish", channel, message)
}
