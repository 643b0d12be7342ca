package qosprofile

import "errors"

var (
	// ErrProfileNotFound is returned by Get for an unknown profile name.
	ErrProfileNotFound = errors.New("qosprofile: profile not found")

	// ErrInvalidProfile wraps decoding and validation failures of a single profile.
	ErrInvalidProfile = errors.New("qosprofile: invalid profile")

	// ErrBaseCycle is returned when profiles inherit from each other in a loop.
	ErrBaseCycle = errors.New("qosprofile: base profile cycle")
)
