package wait

import (
	"context"
	"sync"
	"time"
)

// Wait 在sync.WaitGroup的基础上加了超时等待，关闭服务时用于等待正在执行的命令
type Wait struct {
	wg sync.WaitGroup
}

// Add adds delta, which may be negative, to the WaitGroup counter.
func (w *Wait) Add(delta int) {
	w.wg.Add(delta)
}

// Done decrements the WaitGroup counter by one
func (w *Wait) Done() {
	w.wg.Done()
}

// Wait blocks until the WaitGroup counter is zero.
func (w *Wait) Wait() {
	w.wg.Wait()
}

// waitContext 阻塞直到计数归零或者ctx结束，ctx结束时返回ctx.Err()
func (w *Wait) waitContext(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		w.wg.Wait()
	}()
	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitWithTimeout 超时返回true，正常结束返回false
func (w *Wait) WaitWithTimeout(timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return w.waitContext(ctx) != nil
}
