package redis

/* ---- scripting ---- */

// Eval numKeys之后先是keys再是其余参数
func (c *Client) Eval(script string, numKeys int, args ...string) *Future {
	full := make([]any, 0, len(args)+2)
	full = append(full, script, numKeys)
	for _, arg := range args {
		full = append(full, arg)
	}
	return c.Send("eval", full...)
}

func (c *Client) EvalSHA(sha1 string, numKeys int, args ...string) *Future {
	full := make([]any, 0, len(args)+2)
	full = append(full, sha1, numKeys)
	for _, arg := range args {
		full = append(full, arg)
	}
	return c.Send("evalsha", full...)
}

func (c *Client) ScriptLoad(script string) *Future {
	return c.SendText("script", "load", script)
}

func (c *Client) ScriptExists(sha1s ...string) *Future {
	full := make([]any, 0, len(sha1s)+1)
	full = append(full, "exists")
	for _, sha := range sha1s {
		full = append(full, sha)
	}
	return c.SendList("script", full...)
}

func (c *Client) ScriptFlush() *Future {
	return c.SendVoid("script", "flush")
}
