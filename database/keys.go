package database

import (
	"path"

	"miniSeq/interface/database"
	"miniSeq/interface/redis"
	"miniSeq/redis/protocol"
)

// execDel removes keys from db
func execDel(db *DB, args [][]byte) redis.Reply {
	deleted := db.Removes(toKeys(args)...)
	db.addDirty(deleted)
	return protocol.MakeIntReply(int64(deleted))
}

// execExists 返回存在的key的个数
func execExists(db *DB, args [][]byte) redis.Reply {
	result := int64(0)
	for _, arg := range args {
		if _, exists := db.GetEntity(string(arg)); exists {
			result++
		}
	}
	return protocol.MakeIntReply(result)
}

// execType 只有两种结果：seq 或 none
func execType(db *DB, args [][]byte) redis.Reply {
	entity, exists := db.GetEntity(string(args[0]))
	if !exists {
		return protocol.MakeStatusReply("none")
	}
	if _, ok := asSequence(entity); ok {
		return protocol.MakeStatusReply("seq")
	}
	return &protocol.UnknownErrReply{}
}

// execKeys 按glob模式返回key
func execKeys(db *DB, args [][]byte) redis.Reply {
	pattern := string(args[0])
	if _, err := path.Match(pattern, ""); err != nil {
		return protocol.MakeErrReply("ERR illegal wildcard")
	}
	result := make([][]byte, 0)
	db.ForEach(func(key string, _ *database.DataEntity) bool {
		if ok, _ := path.Match(pattern, key); ok {
			result = append(result, []byte(key))
		}
		return true
	})
	return protocol.MakeMultiBulkReply(result)
}

func execDBSize(db *DB, args [][]byte) redis.Reply {
	return protocol.MakeIntReply(int64(db.data.Len()))
}

func execFlushDB(db *DB, args [][]byte) redis.Reply {
	db.addDirty(db.Flush())
	return protocol.MakeOkReply()
}

// Ping the server
func Ping(db *DB, args [][]byte) redis.Reply {
	if len(args) == 0 {
		return protocol.MakePongReply()
	} else if len(args) == 1 {
		return protocol.MakeStatusReply(string(args[0]))
	}
	return protocol.MakeErrReply("ERR wrong number of arguments for 'ping' command")
}

func init() {
	RegisterCommand("Ping", Ping, noPrepare, -1)
	RegisterCommand("Del", execDel, writeAllKeys, -2)
	RegisterCommand("Exists", execExists, readAllKeys, -2)
	RegisterCommand("Type", execType, readFirstKey, 2)
	RegisterCommand("Keys", execKeys, noPrepare, 2)
	RegisterCommand("DBSize", execDBSize, noPrepare, 1)
	RegisterCommand("FlushDB", execFlushDB, noPrepare, 1)
}
