package database

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"miniSeq/config"
	"miniSeq/interface/redis"
	"miniSeq/lib/logger"
	"miniSeq/redis/protocol"
)

// Engine 持有全部数据库，负责选择数据库以及跨库的命令
type Engine struct {
	dbSet []*DB
}

// NewEngine 按照配置创建数据库
func NewEngine() *Engine {
	databases := config.Properties.Databases
	if databases <= 0 {
		databases = 16
	}
	engine := &Engine{
		dbSet: make([]*DB, databases),
	}
	for i := range engine.dbSet {
		db := makeDB()
		db.index = i
		engine.dbSet[i] = db
	}
	return engine
}

// newBasicEngine 只有一个非并发安全的数据库
func newBasicEngine() *Engine {
	return &Engine{
		dbSet: []*DB{makeBasicDB()},
	}
}

// Exec 执行命令，命令中的panic会被捕获并返回错误
func (engine *Engine) Exec(c redis.Connection, cmdLine [][]byte) (result redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Warn(fmt.Sprintf("error occurs: %v\n%s", err, string(debug.Stack())))
			result = &protocol.UnknownErrReply{}
		}
	}()
	if len(cmdLine) == 0 {
		return protocol.MakeErrReply("ERR empty command")
	}

	cmdName := strings.ToLower(string(cmdLine[0]))
	switch cmdName {
	case "select":
		if len(cmdLine) != 2 {
			return protocol.MakeArgNumErrReply(cmdName)
		}
		return engine.execSelect(c, cmdLine[1:])
	case "flushall":
		if len(cmdLine) != 1 {
			return protocol.MakeArgNumErrReply(cmdName)
		}
		return engine.flushAll()
	case "info":
		return engine.execInfo()
	}

	dbIndex := 0
	if c != nil {
		dbIndex = c.GetDBIndex()
	}
	db, errReply := engine.selectDB(dbIndex)
	if errReply != nil {
		return errReply
	}
	return db.Exec(c, cmdLine)
}

func (engine *Engine) selectDB(dbIndex int) (*DB, protocol.ErrorReply) {
	if dbIndex < 0 || dbIndex >= len(engine.dbSet) {
		return nil, protocol.MakeErrReply("ERR DB index is out of range")
	}
	return engine.dbSet[dbIndex], nil
}

func (engine *Engine) execSelect(c redis.Connection, args [][]byte) redis.Reply {
	dbIndex, err := strconv.Atoi(string(args[0]))
	if err != nil {
		return protocol.MakeErrReply("ERR invalid DB index")
	}
	if dbIndex < 0 || dbIndex >= len(engine.dbSet) {
		return protocol.MakeErrReply("ERR DB index is out of range")
	}
	if c != nil {
		c.SelectDB(dbIndex)
	}
	return protocol.MakeOkReply()
}

func (engine *Engine) flushAll() redis.Reply {
	for _, db := range engine.dbSet {
		db.addDirty(db.Flush())
	}
	return protocol.MakeOkReply()
}

// execInfo 返回运行状态
func (engine *Engine) execInfo() redis.Reply {
	var sb strings.Builder
	sb.WriteString("# Server\r\n")
	sb.WriteString("run_id:" + config.Properties.RunID + "\r\n")
	uptime := time.Since(config.EachTimeServerInfo.StartUpTime)
	sb.WriteString("uptime_in_seconds:" + strconv.FormatInt(int64(uptime.Seconds()), 10) + "\r\n")
	sb.WriteString("# Stats\r\n")
	sb.WriteString("total_writes:" + strconv.FormatInt(engine.totalWrites(), 10) + "\r\n")
	sb.WriteString("# Keyspace\r\n")
	for i, db := range engine.dbSet {
		if keys := db.data.Len(); keys > 0 {
			sb.WriteString("db" + strconv.Itoa(i) + ":keys=" + strconv.Itoa(keys) + "\r\n")
		}
	}
	return protocol.MakeBulkReply([]byte(sb.String()))
}

// totalWrites 全部数据库中实际发生的修改次数
func (engine *Engine) totalWrites() int64 {
	var total int64
	for _, db := range engine.dbSet {
		total += db.dirty.Load()
	}
	return total
}

// AfterClientClose 连接关闭之后的清理，目前只记录日志
func (engine *Engine) AfterClientClose(c redis.Connection) {
	logger.Debug("client closed: " + c.Name())
}

func (engine *Engine) Close() {
	for _, db := range engine.dbSet {
		db.Flush()
	}
}
