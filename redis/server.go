package redis

/* ---- connection ---- */

func (c *Client) Ping() *Future {
	return c.SendText("ping")
}

func (c *Client) Echo(message string) *Future {
	return c.SendText("echo", message)
}

func (c *Client) Auth(password string) *Future {
	return c.SendVoid("auth", password)
}

func (c *Client) Select(index int) *Future {
	return c.SendVoid("select", index)
}

/* ---- server ---- */

// Info 应答在完成时经INFO变换成形：Sections()取两级map，Map()取扁平视图
func (c *Client) Info() *Future {
	return c.SendMap("info")
}

func (c *Client) DBSize() *Future {
	return c.SendInt("dbsize")
}

func (c *Client) FlushDB() *Future {
	return c.SendVoid("flushdb")
}

func (c *Client) FlushAll() *Future {
	return c.SendVoid("flushall")
}

func (c *Client) Save() *Future {
	return c.SendText("save")
}

func (c *Client) BgSave() *Future {
	return c.SendText("bgsave")
}

func (c *Client) LastSave() *Future {
	return c.SendInt("lastsave")
}

func (c *Client) ConfigGet(parameter string) *Future {
	return c.SendMap("config", "get", parameter)
}

func (c *Client) ConfigSet(parameter string, value string) *Future {
	return c.SendVoid("config", "set", parameter, value)
}
