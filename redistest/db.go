package redistest

import (
	"strconv"
	"sync"
	"sync/atomic"

	_interface "github.com/Ashwin-Surana/vertx-redis-client/interface"
	Reply "github.com/Ashwin-Surana/vertx-redis-client/resp/reply"
)

// store 内存存储，string/hash/set/list各一张表
type store struct {
	mu       sync.Mutex
	strings  map[string][]byte
	hashes   map[string]map[string][]byte
	sets     map[string]map[string]struct{}
	lists    map[string][][]byte
	conns    int64 // total_connections_received近似值
	commands int64
}

func makeStore() *store {
	return &store{
		strings: make(map[string][]byte),
		hashes:  make(map[string]map[string][]byte),
		sets:    make(map[string]map[string]struct{}),
		lists:   make(map[string][][]byte),
	}
}

func (s *store) commandProcessed() {
	atomic.AddInt64(&s.commands, 1)
	atomic.CompareAndSwapInt64(&s.conns, 0, 1)
}

func (s *store) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings = make(map[string][]byte)
	s.hashes = make(map[string]map[string][]byte)
	s.sets = make(map[string]map[string]struct{})
	s.lists = make(map[string][][]byte)
}

// info 固定两节的INFO文本
func (s *store) info() _interface.Reply {
	text := "# Server\r\n" +
		"redis_version:6.2.0-redistest\r\n" +
		"tcp_port:0\r\n" +
		"\r\n" +
		"# Stats\r\n" +
		"total_connections_received:" + strconv.FormatInt(atomic.LoadInt64(&s.conns), 10) + "\r\n" +
		"total_commands_processed:" + strconv.FormatInt(atomic.LoadInt64(&s.commands), 10) + "\r\n"
	return Reply.MakeBulkReply([]byte(text))
}

func (s *store) exec(verb string, args [][]byte) _interface.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch verb {
	case "SET":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		s.strings[string(args[0])] = args[1]
		return Reply.MakeOkReply()
	case "GET":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		val, ok := s.strings[string(args[0])]
		if !ok {
			return Reply.MakeNullBulkReply()
		}
		return Reply.MakeBulkReply(val)
	case "APPEND":
		if len(args) != 2 {
			return argNumErr(verb)
		}
		key := string(args[0])
		val := append(append([]byte{}, s.strings[key]...), args[1]...)
		s.strings[key] = val
		return Reply.MakeIntReply(int64(len(val)))
	case "STRLEN":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return Reply.MakeIntReply(int64(len(s.strings[string(args[0])])))
	case "INCR":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return s.incrBy(string(args[0]), 1)
	case "DECR":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return s.incrBy(string(args[0]), -1)
	case "INCRBY", "DECRBY":
		if len(args) != 2 {
			return argNumErr(verb)
		}
		delta, err := strconv.ParseInt(string(args[1]), 10, 64)
		if err != nil {
			return Reply.MakeErrReply("ERR value is not an integer or out of range")
		}
		if verb == "DECRBY" {
			delta = -delta
		}
		return s.incrBy(string(args[0]), delta)
	case "DEL":
		deleted := int64(0)
		for _, arg := range args {
			key := string(arg)
			if s.removeKey(key) {
				deleted++
			}
		}
		return Reply.MakeIntReply(deleted)
	case "EXISTS":
		count := int64(0)
		for _, arg := range args {
			if s.hasKey(string(arg)) {
				count++
			}
		}
		return Reply.MakeIntReply(count)
	case "HSET":
		if len(args) != 3 {
			return argNumErr(verb)
		}
		key := string(args[0])
		hash, ok := s.hashes[key]
		if !ok {
			hash = make(map[string][]byte)
			s.hashes[key] = hash
		}
		_, existed := hash[string(args[1])]
		hash[string(args[1])] = args[2]
		if existed {
			return Reply.MakeIntReply(0)
		}
		return Reply.MakeIntReply(1)
	case "HGET":
		if len(args) != 2 {
			return argNumErr(verb)
		}
		val, ok := s.hashes[string(args[0])][string(args[1])]
		if !ok {
			return Reply.MakeNullBulkReply()
		}
		return Reply.MakeBulkReply(val)
	case "HDEL":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		hash := s.hashes[string(args[0])]
		deleted := int64(0)
		for _, field := range args[1:] {
			if _, ok := hash[string(field)]; ok {
				delete(hash, string(field))
				deleted++
			}
		}
		return Reply.MakeIntReply(deleted)
	case "HGETALL":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		hash := s.hashes[string(args[0])]
		replies := make([]_interface.Reply, 0, len(hash)*2)
		for field, val := range hash {
			replies = append(replies, Reply.StringToBulkReply(field), Reply.MakeBulkReply(val))
		}
		return Reply.MakeMultiReply(replies)
	case "SADD":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		key := string(args[0])
		set, ok := s.sets[key]
		if !ok {
			set = make(map[string]struct{})
			s.sets[key] = set
		}
		added := int64(0)
		for _, member := range args[1:] {
			if _, ok := set[string(member)]; !ok {
				set[string(member)] = struct{}{}
				added++
			}
		}
		return Reply.MakeIntReply(added)
	case "SREM":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		set := s.sets[string(args[0])]
		removed := int64(0)
		for _, member := range args[1:] {
			if _, ok := set[string(member)]; ok {
				delete(set, string(member))
				removed++
			}
		}
		return Reply.MakeIntReply(removed)
	case "SMEMBERS":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		set := s.sets[string(args[0])]
		replies := make([]_interface.Reply, 0, len(set))
		for member := range set {
			replies = append(replies, Reply.StringToBulkReply(member))
		}
		return Reply.MakeMultiReply(replies)
	case "SISMEMBER":
		if len(args) != 2 {
			return argNumErr(verb)
		}
		if _, ok := s.sets[string(args[0])][string(args[1])]; ok {
			return Reply.MakeIntReply(1)
		}
		return Reply.MakeIntReply(0)
	case "SCARD":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return Reply.MakeIntReply(int64(len(s.sets[string(args[0])])))
	case "LPUSH":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		key := string(args[0])
		for _, val := range args[1:] {
			s.lists[key] = append([][]byte{val}, s.lists[key]...)
		}
		return Reply.MakeIntReply(int64(len(s.lists[key])))
	case "RPUSH":
		if len(args) < 2 {
			return argNumErr(verb)
		}
		key := string(args[0])
		s.lists[key] = append(s.lists[key], args[1:]...)
		return Reply.MakeIntReply(int64(len(s.lists[key])))
	case "LPOP":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		key := string(args[0])
		list := s.lists[key]
		if len(list) == 0 {
			return Reply.MakeNullBulkReply()
		}
		val := list[0]
		s.lists[key] = list[1:]
		return Reply.MakeBulkReply(val)
	case "LLEN":
		if len(args) != 1 {
			return argNumErr(verb)
		}
		return Reply.MakeIntReply(int64(len(s.lists[string(args[0])])))
	}
	return Reply.MakeErrReply("ERR unknown command '" + verb + "'")
}

// incrBy 调用方已持锁
func (s *store) incrBy(key string, delta int64) _interface.Reply {
	cur := int64(0)
	if raw, ok := s.strings[key]; ok {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return Reply.MakeErrReply("ERR value is not an integer or out of range")
		}
		cur = parsed
	}
	cur += delta
	s.strings[key] = []byte(strconv.FormatInt(cur, 10))
	return Reply.MakeIntReply(cur)
}

func (s *store) hasKey(key string) bool {
	if _, ok := s.strings[key]; ok {
		return true
	}
	if _, ok := s.hashes[key]; ok {
		return true
	}
	if _, ok := s.sets[key]; ok {
		return true
	}
	if _, ok := s.lists[key]; ok {
		return true
	}
	return false
}

func (s *store) removeKey(key string) bool {
	found := s.hasKey(key)
	delete(s.strings, key)
	delete(s.hashes, key)
	delete(s.sets, key)
	delete(s.lists, key)
	return found
}
