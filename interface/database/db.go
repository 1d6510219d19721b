package database

import (
	"miniSeq/interface/redis"
)

// CmdLine 一个命令行，第一个元素是命令名称
type CmdLine = [][]byte

type DB interface {
	Exec(client redis.Connection, cmdLine [][]byte) redis.Reply
	AfterClientClose(c redis.Connection)
	Close()
}

// DataEntity 存储key的内容，目前只有链表
type DataEntity struct {
	Data interface{}
}
