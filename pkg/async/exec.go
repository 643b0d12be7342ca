package async

import (
	"context"
	"time"
)

// ExecFuture is the pending result of a function started with Exec.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns and yields its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout is Await bounded by timeout; ErrTimeout if it elapses first.
// The function keeps running after a timeout.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.err
	case <-timer.C:
		return ErrTimeout
	}
}

// IsComplete reports whether the function has returned, without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn(ctx, param) in its own goroutine.
// A context that is already done short-circuits with ctx.Err() and fn is never called.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}
