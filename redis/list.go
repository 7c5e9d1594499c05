package redis

/* ---- list ---- */

func (c *Client) LPush(key string, values ...string) *Future {
	return c.SendInt("lpush", prepend(key, values)...)
}

func (c *Client) RPush(key string, values ...string) *Future {
	return c.SendInt("rpush", prepend(key, values)...)
}

func (c *Client) LPop(key string) *Future {
	return c.SendText("lpop", key)
}

func (c *Client) RPop(key string) *Future {
	return c.SendText("rpop", key)
}

func (c *Client) LLen(key string) *Future {
	return c.SendInt("llen", key)
}

func (c *Client) LRange(key string, start int64, stop int64) *Future {
	return c.SendList("lrange", key, start, stop)
}

func (c *Client) LIndex(key string, index int64) *Future {
	return c.SendText("lindex", key, index)
}

func (c *Client) LSet(key string, index int64, value string) *Future {
	return c.SendVoid("lset", key, index, value)
}

func (c *Client) LRem(key string, count int64, value string) *Future {
	return c.SendInt("lrem", key, count, value)
}

func (c *Client) LTrim(key string, start int64, stop int64) *Future {
	return c.SendVoid("ltrim", key, start, stop)
}

func (c *Client) RPopLPush(source string, destination string) *Future {
	return c.SendText("rpoplpush", source, destination)
}
