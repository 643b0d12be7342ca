package dds

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sample is one unit of published data.
// Implementations must return an independent deep copy from Clone: every matched
// reader receives its own copy and the writer keeps no reference to it.
type Sample interface {
	Clone() Sample
	fmt.Stringer
}

// SampleInfo is the metadata stamped by a writer on every Write call.
// One value is computed per Write and copied to each matched reader.
type SampleInfo struct {
	ValidData       bool      `json:"valid_data"`
	SourceTimestamp time.Time `json:"source_timestamp"`
	SequenceHandle  int64     `json:"sequence_handle"`
	PublicationGUID uuid.UUID `json:"publication_guid"`
}

// TakeAs pops the oldest sample from r and asserts it to T.
// Returns ok=false when the queue is empty or the sample is not a T; in the
// latter case the sample is still consumed.
func TakeAs[T Sample](r *DataReader) (T, SampleInfo, bool) {
	var zero T

	s, info, ok := r.Take()
	if !ok {
		return zero, SampleInfo{}, false
	}

	typed, ok := s.(T)
	if !ok {
		return zero, info, false
	}
	return typed, info, true
}

// ReadAs is the non-destructive counterpart of TakeAs.
func ReadAs[T Sample](r *DataReader) (T, SampleInfo, bool) {
	var zero T

	s, info, ok := r.Read()
	if !ok {
		return zero, SampleInfo{}, false
	}

	typed, ok := s.(T)
	if !ok {
		return zero, info, false
	}
	return typed, info, true
}
