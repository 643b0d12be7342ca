package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the deadline passes first.
	ErrTimeout = errors.New("async: operation timed out")

	// ErrAlreadyStarted is returned when starting a running Coalescer.
	ErrAlreadyStarted = errors.New("async: coalescer already started")

	// ErrNotStarted is returned when stopping a Coalescer that is not running.
	ErrNotStarted = errors.New("async: coalescer not started")
)
