// Package waiter runs the long lived parts of the process until a signal arrives,
// the parent context ends, or one of them fails.
package waiter

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type WaitFunc func(ctx context.Context) error

type Waiter interface {
	Add(fns ...WaitFunc)
	Wait() error
	Context() context.Context
}

type waiterCfg struct {
	signals []os.Signal
	logger  zerolog.Logger
}

type waiter struct {
	ctx      context.Context
	cancelFn context.CancelFunc
	logger   zerolog.Logger

	mu  sync.Mutex
	fns []WaitFunc
}

func NewWaiter(ctx context.Context, cancelFn context.CancelFunc, opts ...Option) Waiter {
	cfg := &waiterCfg{
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	w := &waiter{
		ctx:      ctx,
		cancelFn: cancelFn,
		logger:   cfg.logger,
	}

	if len(cfg.signals) > 0 {
		sigCtx, stop := signal.NotifyContext(ctx, cfg.signals...)
		w.ctx = sigCtx
		w.cancelFn = func() {
			stop()
			cancelFn()
		}
	}

	return w
}

func (w *waiter) Add(fns ...WaitFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fns = append(w.fns, fns...)
}

func (w *waiter) Context() context.Context {
	return w.ctx
}

// Wait blocks until every added func returned. The first error, a signal or the
// parent context ending cancels the rest.
func (w *waiter) Wait() error {
	defer w.cancelFn()

	w.mu.Lock()
	fns := append([]WaitFunc(nil), w.fns...)
	w.mu.Unlock()

	group, gCtx := errgroup.WithContext(w.ctx)
	for _, fn := range fns {
		fn := fn
		group.Go(func() error {
			return fn(gCtx)
		})
	}

	done := make(chan struct{})
	var watcher sync.WaitGroup
	watcher.Add(1)
	go func() {
		defer watcher.Done()
		select {
		case <-gCtx.Done():
			w.logger.Info().Msg("shutting down")
			w.cancelFn()
		case <-done:
		}
	}()

	err := group.Wait()
	close(done)
	watcher.Wait()
	return err
}
