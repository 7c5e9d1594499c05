package redis

/* ---- sorted set ---- */

func (c *Client) ZAdd(key string, score float64, member string) *Future {
	return c.SendInt("zadd", key, score, member)
}

func (c *Client) ZScore(key string, member string) *Future {
	return c.SendText("zscore", key, member)
}

func (c *Client) ZIncrBy(key string, increment float64, member string) *Future {
	return c.SendText("zincrby", key, increment, member)
}

func (c *Client) ZRem(key string, members ...string) *Future {
	return c.SendInt("zrem", prepend(key, members)...)
}

func (c *Client) ZCard(key string) *Future {
	return c.SendInt("zcard", key)
}

func (c *Client) ZCount(key string, min string, max string) *Future {
	return c.SendInt("zcount", key, min, max)
}

func (c *Client) ZRank(key string, member string) *Future {
	return c.SendInt("zrank", key, member)
}

func (c *Client) ZRange(key string, start int64, stop int64, withScores bool) *Future {
	if withScores {
		return c.SendList("zrange", key, start, stop, "WITHSCORES")
	}
	return c.SendList("zrange", key, start, stop)
}

func (c *Client) ZRangeByScore(key string, min string, max string) *Future {
	return c.SendList("zrangebyscore", key, min, max)
}
