package protocol

import (
	"testing"

	"miniSeq/interface/redis"
)

func TestToBytes(t *testing.T) {
	cases := []struct {
		reply    redis.Reply
		expected string
	}{
		{MakeBulkReply([]byte("value")), "$5\r\nvalue\r\n"},
		{MakeBulkReply(nil), "$-1\r\n"},
		{MakeMultiBulkReply([][]byte{[]byte("a"), nil, []byte("bc")}), "*3\r\n$1\r\na\r\n$-1\r\n$2\r\nbc\r\n"},
		{MakeMultiBulkReply(nil), "*0\r\n"},
		{MakeMultiRawReply([]redis.Reply{MakeIntReply(1), MakeOkReply()}), "*2\r\n:1\r\n+OK\r\n"},
		{MakeStatusReply("QUEUED"), "+QUEUED\r\n"},
		{MakeIntReply(-3), ":-3\r\n"},
		{MakeBoolReply(true), ":1\r\n"},
		{MakeBoolReply(false), ":0\r\n"},
		{MakeErrReply("ERR boom"), "-ERR boom\r\n"},
		{MakeArgNumErrReply("sget"), "-ERR wrong number of arguments for 'sget' command\r\n"},
		{MakeNullBulkReply(), "$-1\r\n"},
		{MakeEmptyMultiBulkReply(), "*0\r\n"},
		{MakePongReply(), "+PONG\r\n"},
	}
	for _, c := range cases {
		if actual := string(c.reply.ToBytes()); actual != c.expected {
			t.Errorf("expected %q, actual %q", c.expected, actual)
		}
	}
}

func TestMultiBulkReplyIsNotShared(t *testing.T) {
	first := MakeMultiBulkReply([][]byte{[]byte("first")}).ToBytes()
	_ = MakeMultiBulkReply([][]byte{[]byte("second")}).ToBytes()
	if string(first) != "*1\r\n$5\r\nfirst\r\n" {
		t.Fatalf("pooled buffer leaked into result: %q", first)
	}
}

func TestReplyKinds(t *testing.T) {
	if !IsOKReply(MakeOkReply()) || IsOKReply(MakeIntReply(1)) {
		t.Fatal("IsOKReply mismatch")
	}
	if !IsErrorReply(MakeSyntaxErrReply()) || IsErrorReply(MakePongReply()) || IsErrorReply(nil) {
		t.Fatal("IsErrorReply mismatch")
	}
}
