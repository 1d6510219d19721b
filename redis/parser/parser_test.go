package parser

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"miniSeq/interface/redis"
	"miniSeq/lib/utils"
	"miniSeq/redis/protocol"
)

func TestParseStream(t *testing.T) {
	replies := []redis.Reply{
		protocol.MakeIntReply(1),
		protocol.MakeStatusReply("OK"),
		protocol.MakeErrReply("ERR unknown"),
		protocol.MakeBulkReply([]byte("a\r\nb")), // test binary safe
		protocol.MakeMultiBulkReply(utils.ToCmdLine("sappend", "k", "10")),
	}
	reqs := bytes.Buffer{}
	for _, re := range replies {
		reqs.Write(re.ToBytes())
	}
	reqs.Write([]byte("SLEN k\r\n"))
	expected := make([]redis.Reply, len(replies))
	copy(expected, replies)
	expected = append(expected, protocol.MakeMultiBulkReply(utils.ToCmdLine("SLEN", "k")))

	ch := ParseStream(bytes.NewReader(reqs.Bytes()))
	i := 0
	for payload := range ch {
		if payload.Err != nil {
			if payload.Err == io.EOF {
				break
			}
			t.Fatal(payload.Err)
		}
		if payload.Data == nil {
			t.Fatal("empty data")
		}
		exp := expected[i].ToBytes()
		if !bytes.Equal(exp, payload.Data.ToBytes()) {
			t.Errorf("parse failed: %q, actual %q", exp, payload.Data.ToBytes())
		}
		i++
	}
	if i != len(expected) {
		t.Fatalf("expected %d payloads, actual %d", len(expected), i)
	}
}

func TestParseOne(t *testing.T) {
	reply, err := ParseOne([]byte("*3\r\n$7\r\nsinsert\r\n$1\r\nk\r\n$0\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	mb, ok := reply.(*protocol.MultiBulkReply)
	if !ok {
		t.Fatalf("expected multi bulk, actual %T", reply)
	}
	if !reflect.DeepEqual(mb.Args, [][]byte{[]byte("sinsert"), []byte("k"), {}}) {
		t.Fatalf("unexpected args %q", mb.Args)
	}
}

func TestParseBytes(t *testing.T) {
	replies, err := ParseBytes([]byte(":1\r\n+OK\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies, actual %d", len(replies))
	}
	if _, err = ParseBytes([]byte("$3\r\nab")); err == nil {
		t.Fatal("truncated bulk string should fail")
	}
}

func TestFrameLength(t *testing.T) {
	full := "*2\r\n$4\r\nSLEN\r\n$1\r\nk\r\n"
	cases := []struct {
		buf      string
		expected int
	}{
		{"", 0},
		{full, len(full)},
		{full + "*1\r\n", len(full)},
		{full[:len(full)-1], 0},
		{"*2\r\n$4\r\nSLEN", 0},
		{"*2", 0},
		{"*0\r\n", 4},
		{"*1\r\n$-1\r\n", 9},
		{"SLEN k\r\nPING", 8},
		{"SLEN k", 0},
	}
	for _, c := range cases {
		n, err := FrameLength([]byte(c.buf))
		if err != nil {
			t.Fatalf("%q: %v", c.buf, err)
		}
		if n != c.expected {
			t.Errorf("%q: expected %d, actual %d", c.buf, c.expected, n)
		}
	}
	bads := []string{
		"*x\r\n",
		"*1\r\n+OK\r\n",
		"*1\r\n$-5\r\n",
		// 长度溢出
		"*1\r\n$9223372036854775800\r\n",
		"*2\r\n$9223372036854775800\r\nab",
		"*9223372036854775800\r\n",
		// 超过上限
		"*1\r\n$536870913\r\n",
		"*1048577\r\n",
	}
	for _, bad := range bads {
		if _, err := FrameLength([]byte(bad)); err != ErrMalformedFrame {
			t.Errorf("%q: expected ErrMalformedFrame, actual %v", bad, err)
		}
	}
}

func TestFrameLengthLargeBulkIncomplete(t *testing.T) {
	// 合法但还没收完的大参数
	n, err := FrameLength([]byte("*1\r\n$536870912\r\nabc"))
	if err != nil || n != 0 {
		t.Fatalf("expected incomplete frame, actual %d %v", n, err)
	}
}

// parseOneWithin 在超时时间内返回 ParseOne 的结果
func parseOneWithin(t *testing.T, data string) (redis.Reply, error) {
	t.Helper()
	type result struct {
		reply redis.Reply
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := ParseOne([]byte(data))
		done <- result{reply, err}
	}()
	select {
	case r := <-done:
		return r.reply, r.err
	case <-time.After(2 * time.Second):
		t.Fatalf("%q: ParseOne blocked", data)
	}
	return nil, nil
}

func TestParseOneHugeLength(t *testing.T) {
	for _, data := range []string{
		"$9223372036854775806\r\n",
		"$536870913\r\n",
		"*1\r\n$9223372036854775806\r\n",
		"*9223372036854775806\r\n",
	} {
		if _, err := parseOneWithin(t, data); err == nil || err == io.EOF {
			t.Errorf("%q: expected protocol error, actual %v", data, err)
		}
	}
	// 声明的长度合法但数据不足
	if _, err := parseOneWithin(t, "$536870912\r\nabc"); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, actual %v", err)
	}
}

type panicReader struct{}

func (panicReader) Read(p []byte) (int, error) {
	panic("broken reader")
}

func TestParseStreamRecover(t *testing.T) {
	ch := ParseStream(panicReader{})
	select {
	case payload := <-ch:
		if payload == nil || payload.Err == nil {
			t.Fatal("expected error payload after panic")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("parser did not report the panic")
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after panic")
	}
}
