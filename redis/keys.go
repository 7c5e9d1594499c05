package redis

/* ---- keys ---- */

func (c *Client) Del(keys ...string) *Future {
	return c.SendInt("del", toAny(keys)...)
}

func (c *Client) Exists(key string) *Future {
	return c.SendInt("exists", key)
}

func (c *Client) Expire(key string, seconds int64) *Future {
	return c.SendInt("expire", key, seconds)
}

func (c *Client) TTL(key string) *Future {
	return c.SendInt("ttl", key)
}

func (c *Client) Persist(key string) *Future {
	return c.SendInt("persist", key)
}

func (c *Client) Keys(pattern string) *Future {
	return c.SendList("keys", pattern)
}

func (c *Client) Rename(key string, newKey string) *Future {
	return c.SendVoid("rename", key, newKey)
}

func (c *Client) Type(key string) *Future {
	return c.SendText("type", key)
}

func (c *Client) RandomKey() *Future {
	return c.SendText("randomkey")
}
