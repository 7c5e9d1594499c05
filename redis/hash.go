package redis

/* ---- hash ---- */

func (c *Client) HSet(key string, field string, value string) *Future {
	return c.SendInt("hset", key, field, value)
}

// HMSet 参数为field value交替排列
func (c *Client) HMSet(key string, fieldsAndValues ...string) *Future {
	return c.SendVoid("hmset", prepend(key, fieldsAndValues)...)
}

func (c *Client) HGet(key string, field string) *Future {
	return c.SendText("hget", key, field)
}

func (c *Client) HMGet(key string, fields ...string) *Future {
	return c.SendList("hmget", prepend(key, fields)...)
}

// HGetAll 应答经HGETALL变换，经Map()得到field为键的map
func (c *Client) HGetAll(key string) *Future {
	return c.SendMap("hgetall", key)
}

func (c *Client) HDel(key string, fields ...string) *Future {
	return c.SendInt("hdel", prepend(key, fields)...)
}

func (c *Client) HExists(key string, field string) *Future {
	return c.SendInt("hexists", key, field)
}

func (c *Client) HKeys(key string) *Future {
	return c.SendList("hkeys", key)
}

func (c *Client) HVals(key string) *Future {
	return c.SendList("hvals", key)
}

func (c *Client) HLen(key string) *Future {
	return c.SendInt("hlen", key)
}

func (c *Client) HIncrBy(key string, field string, increment int64) *Future {
	return c.SendInt("hincrby", key, field, increment)
}

func prepend(key string, args []string) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, key)
	for _, arg := range args {
		out = append(out, arg)
	}
	return out
}
