package dds

import (
	"log/slog"

	"github.com/dmitrymomot/dds/pkg/async"
)

// Listener is notified after new data becomes available in a reader's queue.
// The notification carries no payload: call Take in a loop until it reports
// no data, since several deliveries may coalesce before the listener runs.
//
// OnDataAvailable runs on the publishing goroutine with no core locks held.
// Slow listeners stall the writer; hand off with AsyncListener when needed.
type Listener interface {
	OnDataAvailable()
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func()

// OnDataAvailable calls f.
func (f ListenerFunc) OnDataAvailable() { f() }

// AsyncListener moves listener work off the publishing goroutine.
// OnDataAvailable only signals; fn runs on a dedicated goroutine, and
// notifications that arrive while fn is running collapse into one more run.
type AsyncListener struct {
	c *async.Coalescer
}

// AsyncListenerOption configures an AsyncListener.
type AsyncListenerOption func(*asyncListenerConfig)

type asyncListenerConfig struct {
	logger *slog.Logger
}

// WithAsyncListenerLogger sets the logger that reports panics raised by fn.
func WithAsyncListenerLogger(logger *slog.Logger) AsyncListenerOption {
	return func(c *asyncListenerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewAsyncListener starts the hand-off goroutine. Call Close to stop it.
//
// Example:
//
//	var l *dds.AsyncListener
//	l = dds.NewAsyncListener(func() {
//		for {
//			s, info, ok := reader.Take()
//			if !ok {
//				return
//			}
//			process(s, info)
//		}
//	})
//	defer l.Close()
//	reader.SetListener(l)
func NewAsyncListener(fn func(), opts ...AsyncListenerOption) *AsyncListener {
	cfg := &asyncListenerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var copts []async.CoalescerOption
	if cfg.logger != nil {
		copts = append(copts, async.WithCoalescerLogger(cfg.logger))
	}

	c := async.NewCoalescer(fn, copts...)
	// A fresh coalescer cannot already be started.
	_ = c.Start()

	return &AsyncListener{c: c}
}

// OnDataAvailable signals the hand-off goroutine without blocking.
func (l *AsyncListener) OnDataAvailable() {
	l.c.Signal()
}

// Close stops the hand-off goroutine after one final run if a notification
// is pending. Close is idempotent.
func (l *AsyncListener) Close() error {
	_ = l.c.Stop()
	return nil
}

// Stats reports how many notifications were received and how many runs they
// collapsed into.
func (l *AsyncListener) Stats() async.CoalescerStats {
	return l.c.Stats()
}
