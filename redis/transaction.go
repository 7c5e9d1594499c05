package redis

/* ---- transaction ---- */

func (c *Client) Multi() *Future {
	return c.SendVoid("multi")
}

// Exec 应答为数组，每个元素对应一条排队命令的结果
func (c *Client) Exec() *Future {
	return c.SendList("exec")
}

func (c *Client) Discard() *Future {
	return c.SendVoid("discard")
}

func (c *Client) Watch(keys ...string) *Future {
	return c.SendVoid("watch", toAny(keys)...)
}

func (c *Client) Unwatch() *Future {
	return c.SendVoid("unwatch")
}
