package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset 文本编解码器，由配置项encoding指定，按IANA名称查找
type Charset struct {
	name string
	enc  encoding.Encoding
}

// Lookup 根据IANA名称查找编码，UTF-8直接透传字节
func Lookup(name string) (*Charset, error) {
	if isUTF8(name) {
		return &Charset{name: name}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding '%s': %w", name, err)
	}
	if enc == nil {
		// IANA注册过但x/text未实现
		return nil, fmt.Errorf("unsupported encoding '%s'", name)
	}
	return &Charset{name: name, enc: enc}, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func (c *Charset) Name() string {
	return c.name
}

// Decode 将网络字节解码为string，解码失败时按原始字节返回
func (c *Charset) Decode(b []byte) string {
	if c == nil || c.enc == nil {
		return string(b)
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// Encode 将string编码为网络字节
func (c *Charset) Encode(s string) []byte {
	if c == nil || c.enc == nil {
		return []byte(s)
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
