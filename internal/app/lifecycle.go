package app

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc is a function called during shutdown.
// It receives a context that is cancelled when the shutdown timeout expires.
type ShutdownFunc func(ctx context.Context) error

// Lifecycle coordinates graceful shutdown: OS signals or an explicit call
// run the registered functions under one timeout.
type Lifecycle struct {
	mu            sync.Mutex
	shutdownFuncs []ShutdownFunc
	shutdownCh    chan struct{}
	doneCh        chan struct{}
	timeout       time.Duration
	shutdownOnce  sync.Once
	err           error
}

// NewLifecycle creates a new lifecycle manager with the specified shutdown timeout.
func NewLifecycle(timeout time.Duration) *Lifecycle {
	return &Lifecycle{
		shutdownCh: make(chan struct{}),
		doneCh:     make(chan struct{}),
		timeout:    timeout,
	}
}

// OnShutdown registers a function to be called during shutdown.
// Functions are called in reverse order of registration (LIFO).
func (l *Lifecycle) OnShutdown(fn ShutdownFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shutdownFuncs = append(l.shutdownFuncs, fn)
}

// WaitForSignal blocks until SIGINT or SIGTERM is received, shutdown starts,
// or ctx is done. It returns the signal, or nil otherwise.
func (l *Lifecycle) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		return sig
	case <-l.shutdownCh:
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Shutdown calls every registered function in reverse order of
// registration, once. All errors are joined; later calls return the same
// result.
func (l *Lifecycle) Shutdown() error {
	l.shutdownOnce.Do(func() {
		close(l.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		l.mu.Lock()
		funcs := make([]ShutdownFunc, len(l.shutdownFuncs))
		copy(funcs, l.shutdownFuncs)
		l.mu.Unlock()

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			if err := funcs[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		l.err = stderrors.Join(errs...)

		close(l.doneCh)
	})

	<-l.doneCh
	return l.err
}

// Done returns a channel that's closed when shutdown is complete.
func (l *Lifecycle) Done() <-chan struct{} {
	return l.doneCh
}

// ShutdownCh returns a channel that's closed when shutdown starts.
func (l *Lifecycle) ShutdownCh() <-chan struct{} {
	return l.shutdownCh
}

// IsShuttingDown returns true if shutdown has been initiated.
func (l *Lifecycle) IsShuttingDown() bool {
	select {
	case <-l.shutdownCh:
		return true
	default:
		return false
	}
}

// Timeout returns the configured shutdown timeout.
func (l *Lifecycle) Timeout() time.Duration {
	return l.timeout
}
