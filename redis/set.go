package redis

/* ---- set ---- */

func (c *Client) SAdd(key string, members ...string) *Future {
	return c.SendInt("sadd", prepend(key, members)...)
}

func (c *Client) SRem(key string, members ...string) *Future {
	return c.SendInt("srem", prepend(key, members)...)
}

func (c *Client) SMembers(key string) *Future {
	return c.SendList("smembers", key)
}

func (c *Client) SIsMember(key string, member string) *Future {
	return c.SendInt("sismember", key, member)
}

func (c *Client) SCard(key string) *Future {
	return c.SendInt("scard", key)
}

func (c *Client) SPop(key string) *Future {
	return c.SendText("spop", key)
}

func (c *Client) SRandMember(key string) *Future {
	return c.SendText("srandmember", key)
}

func (c *Client) SUnion(keys ...string) *Future {
	return c.SendList("sunion", toAny(keys)...)
}

func (c *Client) SInter(keys ...string) *Future {
	return c.SendList("sinter", toAny(keys)...)
}

func (c *Client) SDiff(keys ...string) *Future {
	return c.SendList("sdiff", toAny(keys)...)
}
