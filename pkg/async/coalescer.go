package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/dds/core/logger"
)

// Coalescer runs a function on its own goroutine each time it is signaled.
// Signals that arrive while the function is running collapse into a single
// follow-up run, so a burst of N signals costs at most two runs.
type Coalescer struct {
	fn     func()
	signal chan struct{}
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	signals atomic.Int64
	runs    atomic.Int64
	panics  atomic.Int64
}

// CoalescerStats provides observability counters.
type CoalescerStats struct {
	Signals   int64
	Runs      int64
	Panics    int64
	IsRunning bool
}

// CoalescerOption configures a Coalescer.
type CoalescerOption func(*Coalescer)

// WithCoalescerLogger sets the logger used to report panics from fn.
func WithCoalescerLogger(logger *slog.Logger) CoalescerOption {
	return func(c *Coalescer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoalescer creates a stopped Coalescer. Call Start or Run to begin.
// Signals sent before start are remembered and handled once it runs.
func NewCoalescer(fn func(), opts ...CoalescerOption) *Coalescer {
	if fn == nil {
		panic("async: coalescer function must not be nil")
	}

	c := &Coalescer{
		fn:     fn,
		signal: make(chan struct{}, 1),
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Signal requests a run. It never blocks.
func (c *Coalescer) Signal() {
	c.signals.Add(1)
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

// Start launches the worker goroutine.
func (c *Coalescer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		c.loop(ctx)
	}()

	return nil
}

// Stop halts the worker and waits for it to exit. A signal pending at stop
// time gets one final run before the goroutine returns.
// Must not be called from inside fn.
func (c *Coalescer) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}

	cancel()
	<-done
	return nil
}

// Run returns an errgroup-compatible function that starts the worker, waits
// for ctx to be cancelled and stops it.
func (c *Coalescer) Run(ctx context.Context) func() error {
	return func() error {
		if err := c.Start(); err != nil {
			return err
		}

		<-ctx.Done()

		if err := c.Stop(); err != nil && !errors.Is(err, ErrNotStarted) {
			return err
		}
		return nil
	}
}

// Stats returns current counters.
func (c *Coalescer) Stats() CoalescerStats {
	c.mu.Lock()
	running := c.cancel != nil
	c.mu.Unlock()

	return CoalescerStats{
		Signals:   c.signals.Load(),
		Runs:      c.runs.Load(),
		Panics:    c.panics.Load(),
		IsRunning: running,
	}
}

func (c *Coalescer) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case <-c.signal:
				c.invoke()
			default:
			}
			return
		case <-c.signal:
			c.invoke()
		}
	}
}

func (c *Coalescer) invoke() {
	defer func() {
		if r := recover(); r != nil {
			c.panics.Add(1)
			c.logger.Error("coalesced function panicked", slog.Any("panic", r))
		}
	}()

	c.runs.Add(1)
	c.fn()
}
