package redis

import (
	"fmt"
	"strings"
	"sync"
	"time"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
	"github.com/Ashwin-Surana/vertx-redis-client/utils/charset"
)

// transform 按verb选择的响应变换，见getTransform
type transform int

const (
	transformNone transform = iota
	transformHGetAll
	transformInfo
)

// Future 一次send的结果，恰好被完成一次。
// 完成动作发生在连接的读goroutine上，投影方法阻塞直到完成。
// verb对应的响应变换（HGETALL/INFO）在完成路径上执行，
// 各个投影入口看到的都是已成形的结果
type Future struct {
	done chan struct{}
	once sync.Once
	rep  _interface.Reply
	err  error
	cs   *charset.Charset
	tf   transform

	fields   map[string]string            // HGETALL/INFO变换的扁平结果
	sections map[string]map[string]string // INFO变换的两级结果
	tfErr    error                        // 变换失败
}

func makeFuture(cs *charset.Charset, tf transform) *Future {
	return &Future{
		done: make(chan struct{}),
		cs:   cs,
		tf:   tf,
	}
}

// complete 完成future。'-'应答在此折算成ServerError，响应变换随即执行
func (f *Future) complete(rep _interface.Reply, err error) {
	f.once.Do(func() {
		if err == nil {
			if errRep, ok := rep.(*Reply.ErrReply); ok {
				err = ServerError(errRep.Status)
				rep = nil
			}
		}
		if err == nil && rep != nil {
			f.applyTransform(rep)
		}
		f.rep = rep
		f.err = err
		close(f.done)
	})
}

// applyTransform 完成时按verb的变换把应答预先成形
func (f *Future) applyTransform(rep _interface.Reply) {
	switch f.tf {
	case transformHGetAll:
		// 交替的field/value数组成形为map
		f.fields, f.tfErr = Reply.AsMap(rep, f.cs)
	case transformInfo:
		text, err := Reply.AsText(rep, f.cs)
		if err != nil {
			f.tfErr = err
			return
		}
		if text == nil {
			return // null bulk，无内容
		}
		f.sections = parseInfo(*text)
		f.fields = flattenInfo(f.sections)
	}
}

// flattenInfo 供Map()使用的扁平视图，节信息丢弃
func flattenInfo(sections map[string]map[string]string) map[string]string {
	flat := make(map[string]string)
	for _, section := range sections {
		for key, val := range section {
			flat[key] = val
		}
	}
	return flat
}

// Done 供select使用
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait 阻塞直到完成。timeout为0时无限等待
func (f *Future) Wait(timeout time.Duration) error {
	if timeout <= 0 {
		<-f.done
		return nil
	}
	select {
	case <-f.done:
		return nil
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// Err 等待完成并返回错误（void形态）
func (f *Future) Err() error {
	<-f.done
	return f.err
}

// Reply 等待完成并返回原始应答
func (f *Future) Reply() (_interface.Reply, error) {
	<-f.done
	return f.rep, f.err
}

// TextOrNil 文本投影，null bulk返回nil
func (f *Future) TextOrNil() (*string, error) {
	<-f.done
	if f.err != nil {
		return nil, f.err
	}
	return Reply.AsText(f.rep, f.cs)
}

// Text 文本投影，null折算为空串
func (f *Future) Text() (string, error) {
	text, err := f.TextOrNil()
	if err != nil || text == nil {
		return "", err
	}
	return *text, nil
}

// Int 整数投影
func (f *Future) Int() (int64, error) {
	<-f.done
	if f.err != nil {
		return 0, f.err
	}
	return Reply.AsInt(f.rep)
}

// List 列表投影，逐元素文本化并保留null
func (f *Future) List() ([]*string, error) {
	<-f.done
	if f.err != nil {
		return nil, f.err
	}
	return Reply.AsList(f.rep, f.cs)
}

// Strings 列表投影的有损便捷形式，null折算为空串
func (f *Future) Strings() ([]string, error) {
	list, err := f.List()
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		if s != nil {
			out[i] = *s
		}
	}
	return out, nil
}

// Map map投影。HGETALL与INFO返回完成时已成形的结果，
// 其余命令按偶数长度数组投影
func (f *Future) Map() (map[string]string, error) {
	<-f.done
	if f.err != nil {
		return nil, f.err
	}
	switch f.tf {
	case transformHGetAll, transformInfo:
		return f.fields, f.tfErr
	}
	return Reply.AsMap(f.rep, f.cs)
}

// Sections INFO变换的两级map，节外的孤儿键放在""节下
func (f *Future) Sections() (map[string]map[string]string, error) {
	<-f.done
	if f.err != nil {
		return nil, f.err
	}
	if f.tf != transformInfo {
		return nil, fmt.Errorf("%w: sections view requires an info reply", Reply.ErrProjection)
	}
	return f.sections, f.tfErr
}

// parseInfo INFO解析规则：按\r\n或\n分行；空行结束当前节；
// #开头的行开启新节，节名取其余部分trim后转小写；
// 其他行按第一个':'切成key/value
func parseInfo(info string) map[string]map[string]string {
	value := make(map[string]map[string]string)
	var section map[string]string
	for _, line := range strings.Split(strings.ReplaceAll(info, "\r\n", "\n"), "\n") {
		if len(line) == 0 {
			// 当前节结束
			section = nil
			continue
		}
		if line[0] == '#' {
			// 新节开始
			section = make(map[string]string)
			value[strings.ToLower(strings.TrimSpace(line[1:]))] = section
			continue
		}
		split := strings.Index(line, ":")
		if split < 0 {
			continue
		}
		if section == nil {
			// 节外的键挂在""下
			top, ok := value[""]
			if !ok {
				top = make(map[string]string)
				value[""] = top
			}
			top[line[:split]] = line[split+1:]
		} else {
			section[line[:split]] = line[split+1:]
		}
	}
	return value
}
