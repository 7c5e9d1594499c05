package reply

import (
	"errors"
	"fmt"
	"strconv"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
)

// ErrProjection 应答类型与调用方要求的返回形态不兼容
var ErrProjection = errors.New("projection error")

// AsText 文本投影。null bulk返回nil，整数按十进制渲染
func AsText(rep _interface.Reply, cs *charset.Charset) (*string, error) {
	switch r := rep.(type) {
	case *StatusReply:
		s := r.Status
		return &s, nil
	case *BulkReply:
		if r.IsNull() {
			return nil, nil
		}
		s := cs.Decode(r.Bulk)
		return &s, nil
	case *IntReply:
		s := strconv.FormatInt(r.Code, 10)
		return &s, nil
	}
	return nil, fmt.Errorf("%w: %T is not text", ErrProjection, rep)
}

// AsInt 整数投影。形如数字的bulk/status按十进制解析
func AsInt(rep _interface.Reply) (int64, error) {
	switch r := rep.(type) {
	case *IntReply:
		return r.Code, nil
	case *StatusReply:
		code, err := strconv.ParseInt(r.Status, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: status '%s' is not an integer", ErrProjection, r.Status)
		}
		return code, nil
	case *BulkReply:
		if r.IsNull() {
			return 0, fmt.Errorf("%w: null bulk is not an integer", ErrProjection)
		}
		code, err := strconv.ParseInt(string(r.Bulk), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bulk '%s' is not an integer", ErrProjection, string(r.Bulk))
		}
		return code, nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrProjection, rep)
}

// AsList 列表投影，逐元素做文本投影，保留null
func AsList(rep _interface.Reply, cs *charset.Charset) ([]*string, error) {
	elements, err := elementsOf(rep)
	if err != nil {
		return nil, err
	}
	if elements == nil {
		return nil, nil
	}
	list := make([]*string, len(elements))
	for i, element := range elements {
		text, err := AsText(element, cs)
		if err != nil {
			return nil, err
		}
		list[i] = text
	}
	return list, nil
}

// AsMap 偶数长度的数组按k/v对解释，奇数长度报错
func AsMap(rep _interface.Reply, cs *charset.Charset) (map[string]string, error) {
	elements, err := elementsOf(rep)
	if err != nil {
		return nil, err
	}
	if len(elements)%2 != 0 {
		return nil, fmt.Errorf("%w: array of %d elements is not a map", ErrProjection, len(elements))
	}
	m := make(map[string]string, len(elements)/2)
	for i := 0; i < len(elements); i += 2 {
		key, err := AsText(elements[i], cs)
		if err != nil {
			return nil, err
		}
		val, err := AsText(elements[i+1], cs)
		if err != nil {
			return nil, err
		}
		if key == nil {
			continue // null键无法入map
		}
		if val == nil {
			m[*key] = ""
		} else {
			m[*key] = *val
		}
	}
	return m, nil
}

func elementsOf(rep _interface.Reply) ([]_interface.Reply, error) {
	switch r := rep.(type) {
	case *MultiReply:
		if r.IsNull() {
			return nil, nil
		}
		return r.Replies, nil
	case *ArrayReply:
		replies := make([]_interface.Reply, len(r.Args))
		for i, arg := range r.Args {
			replies[i] = MakeBulkReply(arg)
		}
		return replies, nil
	}
	return nil, fmt.Errorf("%w: %T is not an array", ErrProjection, rep)
}
