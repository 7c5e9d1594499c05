package reply

import _interface "github.com/Ashwin-Surana/vertx-redis-client/interface"

func StringToBulkReply(arg string) *BulkReply {
	return &BulkReply{
		Bulk: []byte(arg),
	}
}

// StringToMultiReply 构造bulk数组，用于pubsub推送等固定格式
func StringToMultiReply(lines ...string) *MultiReply {
	replies := make([]_interface.Reply, len(lines))
	for i, line := range lines {
		replies[i] = StringToBulkReply(line)
	}
	return MakeMultiReply(replies)
}

func IsOKReply(reply _interface.Reply) bool {
	return string(reply.ToBytes()) == "+OK\r\n"
}

func IsErrorReply(reply _interface.Reply) bool {
	return reply.ToBytes()[0] == '-'
}
