package protocol

import (
	"bytes"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"miniSeq/interface/redis"
)

var (
	// CRLF 是RESP协议中每行的末尾分隔符
	CRLF = "\r\n"
)

// appendBulk 写入 $len\r\narg\r\n，arg为nil时写入 $-1\r\n
func appendBulk(buf *bytebufferpool.ByteBuffer, arg []byte) {
	if arg == nil {
		_, _ = buf.Write(nullBulkBytes)
		return
	}
	_ = buf.WriteByte('$')
	buf.B = strconv.AppendInt(buf.B, int64(len(arg)), 10)
	_, _ = buf.WriteString(CRLF)
	_, _ = buf.Write(arg)
	_, _ = buf.WriteString(CRLF)
}

func appendArrayHeader(buf *bytebufferpool.ByteBuffer, n int) {
	_ = buf.WriteByte('*')
	buf.B = strconv.AppendInt(buf.B, int64(n), 10)
	_, _ = buf.WriteString(CRLF)
}

// detach buf会被放回池中，返回之前拷贝一份
func detach(buf *bytebufferpool.ByteBuffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

// BulkReply 一个二进制安全的字符串
type BulkReply struct {
	Arg []byte
}

func MakeBulkReply(arg []byte) *BulkReply {
	return &BulkReply{
		Arg: arg,
	}
}

// ToBytes 例如 $5\r\nvalue\r\n
func (r *BulkReply) ToBytes() []byte {
	if r.Arg == nil {
		return nullBulkBytes
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	appendBulk(buf, r.Arg)
	return detach(buf)
}

// MultiBulkReply 字符串数组，链表的多个元素和客户端发来的命令都是这种格式
type MultiBulkReply struct {
	Args [][]byte
}

func MakeMultiBulkReply(args [][]byte) *MultiBulkReply {
	return &MultiBulkReply{
		Args: args,
	}
}

// ToBytes 例如：
//
//	*2\r\n
//	$4\r\n
//	SLEN\r\n
//	$1\r\n
//	k\r\n
func (r *MultiBulkReply) ToBytes() []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendArrayHeader(buf, len(r.Args))
	for _, arg := range r.Args {
		appendBulk(buf, arg)
	}
	return detach(buf)
}

// MultiRawReply 数组中的每一项可以是任意回复
type MultiRawReply struct {
	Replies []redis.Reply
}

func MakeMultiRawReply(replies []redis.Reply) *MultiRawReply {
	return &MultiRawReply{
		Replies: replies,
	}
}

func (r *MultiRawReply) ToBytes() []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendArrayHeader(buf, len(r.Replies))
	for _, reply := range r.Replies {
		_, _ = buf.Write(reply.ToBytes())
	}
	return detach(buf)
}

// StatusReply +status
type StatusReply struct {
	Status string
}

func MakeStatusReply(status string) *StatusReply {
	return &StatusReply{
		Status: status,
	}
}

func (r *StatusReply) ToBytes() []byte {
	return []byte("+" + r.Status + CRLF)
}

// IntReply :code
type IntReply struct {
	Code int64
}

func MakeIntReply(code int64) *IntReply {
	return &IntReply{
		Code: code,
	}
}

func (r *IntReply) ToBytes() []byte {
	out := make([]byte, 0, 24)
	out = append(out, ':')
	out = strconv.AppendInt(out, r.Code, 10)
	return append(out, CRLF...)
}

// MakeBoolReply true为:1，false为:0
func MakeBoolReply(b bool) *IntReply {
	if b {
		return MakeIntReply(1)
	}
	return MakeIntReply(0)
}

// ErrorReply 错误回复同时也是error
type ErrorReply interface {
	Error() string
	ToBytes() []byte
}

// StandardErrReply -ERR ...
type StandardErrReply struct {
	Status string
}

func MakeErrReply(status string) *StandardErrReply {
	return &StandardErrReply{
		Status: status,
	}
}

func (r *StandardErrReply) ToBytes() []byte {
	return []byte("-" + r.Status + CRLF)
}

func (r *StandardErrReply) Error() string {
	return r.Status
}

func IsOKReply(reply redis.Reply) bool {
	if reply == nil {
		return false
	}
	return bytes.Equal(reply.ToBytes(), okBytes)
}

func IsErrorReply(reply redis.Reply) bool {
	if reply == nil {
		return false
	}
	b := reply.ToBytes()
	return len(b) > 0 && b[0] == '-'
}
