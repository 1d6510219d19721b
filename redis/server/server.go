package server

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/gnet"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"miniSeq/interface/database"
	"miniSeq/lib/logger"
	"miniSeq/lib/sync/wait"
	"miniSeq/redis/connection"
	"miniSeq/redis/parser"
	"miniSeq/redis/protocol"
)

var (
	maxClientsErrBytes = []byte("-ERR max number of clients reached\r\n")
	errShutdownTimeout = errors.New("server: timed out waiting for running commands")
)

// Handler 处理gnet事件循环上的连接和请求，多个事件循环会并发调用
type Handler struct {
	gnet.EventServer

	// 当前活动的客户端连接，gnet.Conn -> *connection.Connection
	activeConn sync.Map
	connCount  atomic.Int64
	maxClients int

	db database.DB

	// 表示是否正在拒绝新的客户端请求
	closing atomic.Bool
	// 正在执行的命令
	executing wait.Wait
}

// MakeHandler maxClients为0时不限制连接数
func MakeHandler(db database.DB, maxClients int) *Handler {
	return &Handler{
		db:         db,
		maxClients: maxClients,
	}
}

func (h *Handler) OnInitComplete(srv gnet.Server) (action gnet.Action) {
	logger.Info(fmt.Sprintf("bind: %s, multi-cores: %t, loops: %d, start listening...",
		srv.Addr.String(), srv.Multicore, srv.NumEventLoop))
	return
}

func (h *Handler) OnShutdown(srv gnet.Server) {
	h.closing.Store(true)
	logger.Info("shutting down...")
}

// OnOpened 连接打开时创建客户端对象
func (h *Handler) OnOpened(c gnet.Conn) (out []byte, action gnet.Action) {
	if h.closing.Load() {
		return nil, gnet.Close
	}
	if h.maxClients > 0 && h.connCount.Load() >= int64(h.maxClients) {
		logger.Warn("max number of clients reached, reject " + c.RemoteAddr().String())
		return maxClientsErrBytes, gnet.Close
	}
	client := connection.NewConn(c)
	c.SetContext(client)
	h.activeConn.Store(c, client)
	h.connCount.Inc()
	logger.Debug("accept link: " + client.Name())
	return
}

func (h *Handler) OnClosed(c gnet.Conn, err error) (action gnet.Action) {
	client, ok := c.Context().(*connection.Connection)
	if !ok {
		return
	}
	if _, loaded := h.activeConn.LoadAndDelete(c); loaded {
		h.connCount.Dec()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		logger.With(
			zap.Uint64("client", client.ID()),
			zap.String("name", client.Name()),
			zap.Error(err),
		).Warn("connection closed with error")
	}
	h.db.AfterClientClose(client)
	return
}

// React 收到一个完整的请求（由respCodec切分）后执行命令
func (h *Handler) React(packet []byte, c gnet.Conn) (out []byte, action gnet.Action) {
	if h.closing.Load() {
		return nil, gnet.Close
	}
	h.executing.Add(1)
	defer h.executing.Done()

	client, ok := c.Context().(*connection.Connection)
	if !ok {
		return nil, gnet.Close
	}

	payload, err := parser.ParseOne(packet)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		// 协议错误之后的数据无法再对齐，直接关闭连接
		errReply := &protocol.ProtocolErrReply{Msg: err.Error()}
		return errReply.ToBytes(), gnet.Close
	}
	r, ok := payload.(*protocol.MultiBulkReply)
	if !ok || len(r.Args) == 0 {
		logger.Debug("require multi bulk protocol")
		return
	}

	switch strings.ToLower(string(r.Args[0])) {
	case "quit":
		return protocol.MakeOkReply().ToBytes(), gnet.Close
	case "client":
		return h.execClient(client, r.Args[1:]), gnet.None
	}

	result := h.db.Exec(client, r.Args)
	if result != nil {
		out = result.ToBytes()
	}
	return
}

// execClient 只支持 CLIENT SETNAME / GETNAME
func (h *Handler) execClient(client *connection.Connection, args [][]byte) []byte {
	if len(args) == 0 {
		return protocol.MakeArgNumErrReply("client").ToBytes()
	}
	switch strings.ToLower(string(args[0])) {
	case "setname":
		if len(args) != 2 {
			return protocol.MakeArgNumErrReply("client|setname").ToBytes()
		}
		client.SetName(string(args[1]))
		return protocol.MakeOkReply().ToBytes()
	case "getname":
		return protocol.MakeBulkReply([]byte(client.Name())).ToBytes()
	}
	return protocol.MakeSyntaxErrReply().ToBytes()
}

// ActiveConnections 当前连接数
func (h *Handler) ActiveConnections() int64 {
	return h.connCount.Load()
}

// Close 拒绝新的请求，等待正在执行的命令结束后关闭数据库
func (h *Handler) Close(timeout time.Duration) (err error) {
	h.closing.Store(true)
	if h.executing.WaitWithTimeout(timeout) {
		err = multierr.Append(err, errShutdownTimeout)
	}
	// gnet会关闭剩下的连接，这里只记录
	h.activeConn.Range(func(key, value interface{}) bool {
		logger.Debug("drop link: " + value.(*connection.Connection).Name())
		return true
	})
	h.db.Close()
	return err
}
