package redis

import "net"

// Connection 是表示客户端和服务端之间的一个连接
type Connection interface {
	Write([]byte) (int, error)
	Close() error
	RemoteAddr() net.Addr

	SetName(string)
	Name() string

	GetDBIndex() int
	SelectDB(int)
}
