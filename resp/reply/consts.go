package reply

/* ---- Pong Reply ---- */

type PongReply struct{}

var pongReply = &PongReply{}

var pongBytes = []byte("+PONG" + CRLF)

func MakePongReply() *PongReply {
	return pongReply
}

func (r *PongReply) ToBytes() []byte {
	return pongBytes
}

/* ---- Ok Reply ---- */

type OkReply struct{}

var okReply = &OkReply{}

var okBytes = []byte("+OK" + CRLF)

func MakeOkReply() *OkReply {
	return okReply
}

func (r *OkReply) ToBytes() []byte {
	return okBytes
}

/* ---- Queued Reply ---- */

type QueuedReply struct{}

var queuedReply = &QueuedReply{}

var queuedBytes = []byte("+QUEUED" + CRLF)

func MakeQueuedReply() *QueuedReply {
	return queuedReply
}

func (r *QueuedReply) ToBytes() []byte {
	return queuedBytes
}
