package server

import (
	"errors"

	"github.com/panjf2000/gnet"

	"miniSeq/redis/parser"
)

var errIncompletePacket = errors.New("incomplete packet")

// respCodec 按RESP请求切分gnet读到的数据，每次Decode返回一个完整请求
type respCodec struct{}

func (cc *respCodec) Encode(c gnet.Conn, buf []byte) ([]byte, error) {
	return buf, nil
}

func (cc *respCodec) Decode(c gnet.Conn) ([]byte, error) {
	buf := c.Read()
	n, err := parser.FrameLength(buf)
	if err != nil {
		// 整个缓冲区交给React，解析失败后返回协议错误并关闭连接
		frame := make([]byte, len(buf))
		copy(frame, buf)
		c.ResetBuffer()
		return frame, nil
	}
	if n == 0 {
		return nil, errIncompletePacket
	}
	frame := make([]byte, n)
	copy(frame, buf[:n])
	c.ShiftN(n)
	return frame, nil
}
