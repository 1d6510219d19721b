package connection

import (
	"net"
	"strconv"
	"sync"

	"github.com/panjf2000/gnet"
	"go.uber.org/atomic"
)

/*
	客户端和服务器的连接
*/

var clientCounter atomic.Uint64

// GenerateClientId 每个连接一个递增的id，多个事件循环同时调用也是安全的
func GenerateClientId() uint64 {
	return clientCounter.Inc()
}

// Connection 代表着一个客户端的连接
type Connection struct {
	id uint64
	// 与客户端的网络连接，gnet负责真正的读写
	conn gnet.Conn

	mu sync.Mutex
	// CLIENT SETNAME 设置的名字
	name string

	// 代表选择的数据库
	selectedDB int
}

// NewConn 创建一个客户端连接对象
func NewConn(conn gnet.Conn) *Connection {
	return &Connection{
		id:   GenerateClientId(),
		conn: conn,
	}
}

func (c *Connection) ID() uint64 {
	return c.id
}

// RemoteAddr 返回远程地址
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Write 异步写回客户端，由事件循环负责真正发送
func (c *Connection) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if err := c.conn.AsyncWrite(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (c *Connection) Close() error {
	return c.conn.Close()
}

func (c *Connection) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Name 没有设置名字时返回 "id=1 addr=192.0.2.1:25"
func (c *Connection) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.name != "" {
		return c.name
	}
	addr := ""
	if c.conn != nil && c.conn.RemoteAddr() != nil {
		addr = c.conn.RemoteAddr().String()
	}
	return "id=" + strconv.FormatUint(c.id, 10) + " addr=" + addr
}

func (c *Connection) GetDBIndex() int {
	return c.selectedDB
}

func (c *Connection) SelectDB(dbNum int) {
	c.selectedDB = dbNum
}
