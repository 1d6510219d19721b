package database

import (
	"strconv"

	"miniSeq/datastruct/list"
	"miniSeq/interface/database"
	"miniSeq/interface/redis"
	"miniSeq/lib/utils"
	"miniSeq/redis/protocol"
)

// Sequence 键空间中保存的链表类型
type Sequence = list.LinkedList[string]

func asSequence(entity *database.DataEntity) (*Sequence, bool) {
	seq, ok := entity.Data.(*Sequence)
	return seq, ok
}

// getAsSequence key不存在时返回nil
func (db *DB) getAsSequence(key string) (*Sequence, protocol.ErrorReply) {
	entity, ok := db.GetEntity(key)
	if !ok {
		return nil, nil
	}
	seq, ok := asSequence(entity)
	if !ok {
		return nil, &protocol.WrongTypeErrReply{}
	}
	return seq, nil
}

// readSequence 只读命令使用，key不存在时当作空链表
func (db *DB) readSequence(key string) (*Sequence, protocol.ErrorReply) {
	seq, errReply := db.getAsSequence(key)
	if errReply != nil {
		return nil, errReply
	}
	if seq == nil {
		seq = list.Make[string]()
	}
	return seq, nil
}

func (db *DB) getOrInitSequence(key string) (seq *Sequence, isNew bool, errReply protocol.ErrorReply) {
	seq, errReply = db.getAsSequence(key)
	if errReply != nil {
		return nil, false, errReply
	}
	isNew = false
	if seq == nil {
		seq = list.Make[string]()
		db.PutEntity(key, &database.DataEntity{
			Data: seq,
		})
		isNew = true
	}
	return seq, isNew, nil
}

// removeIfEmpty 链表被删空之后同时删除key
func (db *DB) removeIfEmpty(key string, seq *Sequence) {
	if seq.IsEmpty() {
		db.Remove(key)
	}
}

// parseIndex 超出int范围（32位平台上）同样返回错误，不会截断
func parseIndex(arg []byte) (int, protocol.ErrorReply) {
	index, err := strconv.Atoi(string(arg))
	if err != nil {
		return 0, protocol.MakeIntErrReply()
	}
	return index, nil
}

// indexErrReply 把链表返回的 *list.IndexError 转换为回复
func indexErrReply(err error) redis.Reply {
	return protocol.MakeErrReply("ERR " + err.Error())
}

// execSAppend SAPPEND key value [value ...]
func execSAppend(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	seq, _, errReply := db.getOrInitSequence(key)
	if errReply != nil {
		return errReply
	}
	for _, value := range args[1:] {
		seq.Add(string(value))
	}
	db.addDirty(len(args) - 1)
	return protocol.MakeIntReply(int64(seq.Len()))
}

// execSInsert SINSERT key index value
func execSInsert(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	index, errReply := parseIndex(args[1])
	if errReply != nil {
		return errReply
	}
	seq, isNew, errReply := db.getOrInitSequence(key)
	if errReply != nil {
		return errReply
	}
	if err := seq.Insert(index, string(args[2])); err != nil {
		if isNew {
			db.Remove(key)
		}
		return indexErrReply(err)
	}
	db.addDirty(1)
	return protocol.MakeIntReply(int64(seq.Len()))
}

// execSRem SREM key value，只移除第一个
func execSRem(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	seq, errReply := db.getAsSequence(key)
	if errReply != nil {
		return errReply
	}
	if seq == nil {
		return protocol.MakeIntReply(0)
	}
	removed := seq.RemoveFirst(string(args[1]))
	if removed {
		db.addDirty(1)
		db.removeIfEmpty(key, seq)
	}
	return protocol.MakeBoolReply(removed)
}

// execSRemAll SREMALL key value
func execSRemAll(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	value := string(args[1])
	seq, errReply := db.getAsSequence(key)
	if errReply != nil {
		return errReply
	}
	if seq == nil {
		return protocol.MakeIntReply(0)
	}
	removed := seq.RemoveAllByVal(func(a string) bool {
		return a == value
	})
	db.addDirty(removed)
	db.removeIfEmpty(key, seq)
	return protocol.MakeIntReply(int64(removed))
}

// execSRemAt SREMAT key index
func execSRemAt(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	index, errReply := parseIndex(args[1])
	if errReply != nil {
		return errReply
	}
	seq, errReply := db.readSequence(key)
	if errReply != nil {
		return errReply
	}
	val, err := seq.Remove(index)
	if err != nil {
		return indexErrReply(err)
	}
	db.addDirty(1)
	db.removeIfEmpty(key, seq)
	return protocol.MakeBulkReply([]byte(val))
}

// execSGet SGET key index
func execSGet(db *DB, args [][]byte) redis.Reply {
	index, errReply := parseIndex(args[1])
	if errReply != nil {
		return errReply
	}
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	val, err := seq.Get(index)
	if err != nil {
		return indexErrReply(err)
	}
	return protocol.MakeBulkReply([]byte(val))
}

// execSSet SSET key index value
func execSSet(db *DB, args [][]byte) redis.Reply {
	index, errReply := parseIndex(args[1])
	if errReply != nil {
		return errReply
	}
	seq, errReply := db.getAsSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if seq == nil {
		return protocol.MakeErrReply("ERR no such key")
	}
	if err := seq.Set(index, string(args[2])); err != nil {
		return indexErrReply(err)
	}
	db.addDirty(1)
	return protocol.MakeOkReply()
}

// execSLen SLEN key
func execSLen(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.MakeIntReply(int64(seq.Len()))
}

// execSEmpty SEMPTY key
func execSEmpty(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.MakeBoolReply(seq.IsEmpty())
}

// execSRange SRANGE key start stop，闭区间，支持负数下标
func execSRange(db *DB, args [][]byte) redis.Reply {
	start, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return protocol.MakeIntErrReply()
	}
	stop, err := strconv.ParseInt(string(args[2]), 10, 64)
	if err != nil {
		return protocol.MakeIntErrReply()
	}
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	from, to := utils.ConvertRange(start, stop, int64(seq.Len()))
	if from < 0 {
		return protocol.MakeEmptyMultiBulkReply()
	}
	vals, rangeErr := seq.Range(from, to)
	if rangeErr != nil {
		return indexErrReply(rangeErr)
	}
	return protocol.MakeMultiBulkReply(utils.StringsToBytes(vals))
}

// execSMembers SMEMBERS key，从头到尾返回全部元素
func execSMembers(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.MakeMultiBulkReply(utils.StringsToBytes(seq.Values()))
}

// execSReverse SREVERSE key
func execSReverse(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.getAsSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	// 少于两个元素时顺序不会变化
	if seq != nil && seq.Len() > 1 {
		seq.Reverse()
		db.addDirty(1)
	}
	return protocol.MakeOkReply()
}

// execSMiddle SMIDDLE key，偶数个元素时返回靠后的那一个
func execSMiddle(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	val, ok := seq.Middle()
	if !ok {
		return protocol.MakeNullBulkReply()
	}
	return protocol.MakeBulkReply([]byte(val))
}

// execSHasCycle SHASCYCLE key
func execSHasCycle(db *DB, args [][]byte) redis.Reply {
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.MakeBoolReply(seq.HasCycle())
}

// execSContains SCONTAINS key value
func execSContains(db *DB, args [][]byte) redis.Reply {
	value := string(args[1])
	seq, errReply := db.readSequence(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.MakeBoolReply(seq.Contains(func(a string) bool {
		return a == value
	}))
}

func init() {
	RegisterCommand("SAppend", execSAppend, writeFirstKey, -3)
	RegisterCommand("SInsert", execSInsert, writeFirstKey, 4)
	RegisterCommand("SRem", execSRem, writeFirstKey, 3)
	RegisterCommand("SRemAll", execSRemAll, writeFirstKey, 3)
	RegisterCommand("SRemAt", execSRemAt, writeFirstKey, 3)
	RegisterCommand("SSet", execSSet, writeFirstKey, 4)
	RegisterCommand("SReverse", execSReverse, writeFirstKey, 2)
	RegisterCommand("SGet", execSGet, readFirstKey, 3)
	RegisterCommand("SLen", execSLen, readFirstKey, 2)
	RegisterCommand("SEmpty", execSEmpty, readFirstKey, 2)
	RegisterCommand("SRange", execSRange, readFirstKey, 4)
	RegisterCommand("SMembers", execSMembers, readFirstKey, 2)
	RegisterCommand("SMiddle", execSMiddle, readFirstKey, 2)
	RegisterCommand("SHasCycle", execSHasCycle, readFirstKey, 2)
	RegisterCommand("SContains", execSContains, readFirstKey, 3)
}
