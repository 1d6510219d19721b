package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/panjf2000/gnet"
	"go.uber.org/multierr"

	"miniSeq/config"
	"miniSeq/database"
	"miniSeq/lib/logger"
)

// Serve 启动服务并阻塞，收到退出信号后停止事件循环
func Serve(props *config.ServerProperties) error {
	handler := MakeHandler(database.NewEngine(), props.MaxClients)
	addr := props.Address()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("get exit signal: " + sig.String())
		case <-done:
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), props.ShutdownTimeout)
		defer cancel()
		if err := gnet.Stop(ctx, addr); err != nil {
			logger.Error(fmt.Sprintf("stop server: %v", err))
		}
	}()

	err := gnet.Serve(handler, addr,
		gnet.WithMulticore(props.Multicore),
		gnet.WithCodec(&respCodec{}),
		gnet.WithTCPKeepAlive(time.Minute),
		gnet.WithLogger(logger.Sugar()),
	)
	return multierr.Append(err, handler.Close(props.ShutdownTimeout))
}
