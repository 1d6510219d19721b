package redis

// Reply 服务端返回给客户端的内容，ToBytes 序列化为RESP格式
type Reply interface {
	ToBytes() []byte
}
