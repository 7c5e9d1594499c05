package redis

/* ---- string ---- */

func (c *Client) Set(key string, value string) *Future {
	return c.SendVoid("set", key, value)
}

func (c *Client) SetNX(key string, value string) *Future {
	return c.SendInt("setnx", key, value)
}

func (c *Client) SetEX(key string, seconds int64, value string) *Future {
	return c.SendVoid("setex", key, seconds, value)
}

func (c *Client) Get(key string) *Future {
	return c.SendText("get", key)
}

func (c *Client) GetSet(key string, value string) *Future {
	return c.SendText("getset", key, value)
}

func (c *Client) MGet(keys ...string) *Future {
	return c.SendList("mget", toAny(keys)...)
}

// MSet 参数为key value交替排列
func (c *Client) MSet(keysAndValues ...string) *Future {
	return c.SendVoid("mset", toAny(keysAndValues)...)
}

func (c *Client) Append(key string, value string) *Future {
	return c.SendInt("append", key, value)
}

func (c *Client) StrLen(key string) *Future {
	return c.SendInt("strlen", key)
}

func (c *Client) GetRange(key string, start int64, end int64) *Future {
	return c.SendText("getrange", key, start, end)
}

func (c *Client) SetRange(key string, offset int64, value string) *Future {
	return c.SendInt("setrange", key, offset, value)
}

func (c *Client) Incr(key string) *Future {
	return c.SendInt("incr", key)
}

func (c *Client) IncrBy(key string, increment int64) *Future {
	return c.SendInt("incrby", key, increment)
}

func (c *Client) Decr(key string) *Future {
	return c.SendInt("decr", key)
}

func (c *Client) DecrBy(key string, decrement int64) *Future {
	return c.SendInt("decrby", key, decrement)
}

// toAny []string到变参的适配
func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = arg
	}
	return out
}
