package database

import (
	"strings"

	"go.uber.org/atomic"

	"miniSeq/datastruct/dict"
	"miniSeq/datastruct/lock"
	"miniSeq/interface/database"
	"miniSeq/interface/redis"
	"miniSeq/redis/protocol"
)

/*
	database.go表示一个数据库实体
*/

const (
	dataDictSize = 1 << 10
	lockerSize   = 1024
)

type DB struct {
	index int
	// key -> DataEntity
	data dict.Dict

	// dict.Dict 保证单次读写的并发安全，
	// 链表本身不是线程安全的，命令执行期间用locker锁住对应的key
	locker *lock.Locks

	// 真正修改了数据的次数，没有改变任何内容的写命令不计入
	dirty atomic.Int64
}

// CmdLine 一个CmdLine表示一个命令行
type CmdLine = [][]byte

// ExecFunc is interface for command executor，args don't include cmd name
type ExecFunc func(db *DB, args [][]byte) redis.Reply

// PreFunc 分析命令行，返回需要加写锁和读锁的key
type PreFunc func(args [][]byte) ([]string, []string)

// makeDB create DB instance
func makeDB() *DB {
	return &DB{
		data:   dict.MakeConcurrent(dataDictSize),
		locker: lock.Make(lockerSize),
	}
}

// makeBasicDB 单线程使用，测试和工具中使用
func makeBasicDB() *DB {
	return &DB{
		data:   dict.MakeSimple(),
		locker: lock.Make(1),
	}
}

// Exec 执行命令，加锁之后调用对应的executor
func (db *DB) Exec(c redis.Connection, cmdLine [][]byte) redis.Reply {
	cmd, ok := lookupCommand(string(cmdLine[0]))
	if !ok {
		return protocol.MakeErrReply("ERR unknown command '" + strings.ToLower(string(cmdLine[0])) + "'")
	}
	if !cmd.validArity(cmdLine) {
		return protocol.MakeArgNumErrReply(cmd.name)
	}

	write, read := cmd.prepare(cmdLine[1:])
	db.RWLocks(write, read)
	defer db.RWUnLocks(write, read)
	return cmd.executor(db, cmdLine[1:])
}

/* ---- Data Access 数据操作入口----- */

// GetEntity 返回key所对应的数据实体
func (db *DB) GetEntity(key string) (*database.DataEntity, bool) {
	raw, ok := db.data.Get(key)
	if !ok {
		return nil, false
	}
	entity, _ := raw.(*database.DataEntity)
	return entity, true
}

// PutEntity 将k-v放入数据库中
func (db *DB) PutEntity(key string, entity *database.DataEntity) int {
	return db.data.Put(key, entity)
}

func (db *DB) Remove(key string) {
	db.data.Remove(key)
}

func (db *DB) Removes(keys ...string) (deleted int) {
	for _, key := range keys {
		deleted += db.data.Remove(key)
	}
	return deleted
}

// Flush 清空数据库的内容，返回清除的key的个数
func (db *DB) Flush() int {
	n := db.data.Len()
	db.data.Clear()
	return n
}

// addDirty 记录命令实际修改的数量
func (db *DB) addDirty(n int) {
	if n > 0 {
		db.dirty.Add(int64(n))
	}
}

func (db *DB) RWLocks(writeKeys []string, readKeys []string) {
	db.locker.RWLocks(writeKeys, readKeys)
}

func (db *DB) RWUnLocks(writeKeys []string, readKeys []string) {
	db.locker.RWUnLocks(writeKeys, readKeys)
}

// ForEach 遍历所有key
func (db *DB) ForEach(cb func(key string, data *database.DataEntity) bool) {
	db.data.ForEach(func(key string, raw interface{}) bool {
		entity, _ := raw.(*database.DataEntity)
		return cb(key, entity)
	})
}
