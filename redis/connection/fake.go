package connection

import (
	"bytes"
	"net"
	"sync"
)

// FakeConn 没有网络连接的Connection，测试中用于记录写出的内容
type FakeConn struct {
	Connection
	buf    bytes.Buffer
	bufMu  sync.Mutex
	closed bool
}

func NewFakeConn() *FakeConn {
	c := &FakeConn{}
	c.id = GenerateClientId()
	return c
}

// Write writes data to buffer
func (c *FakeConn) Write(b []byte) (int, error) {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()
	return c.buf.Write(b)
}

// Bytes 返回写出的全部内容并清空
func (c *FakeConn) Bytes() []byte {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()
	res := c.buf.Bytes()
	c.buf = bytes.Buffer{}
	return res
}

func (c *FakeConn) Close() error {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()
	c.closed = true
	return nil
}

func (c *FakeConn) IsClosed() bool {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()
	return c.closed
}

func (c *FakeConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}
