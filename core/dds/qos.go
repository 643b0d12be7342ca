package dds

import (
	"errors"
	"fmt"
)

// HistoryKind selects how a reader retains undelivered samples.
type HistoryKind int

const (
	// KeepLast retains at most Depth samples, evicting the oldest on overflow.
	KeepLast HistoryKind = iota
	// KeepAll retains every sample until it is taken.
	KeepAll
)

// ReliabilityKind is recorded on entities but has no behavioral effect:
// delivery is always in-process and synchronous.
type ReliabilityKind int

const (
	BestEffort ReliabilityKind = iota
	Reliable
)

// DurabilityKind is recorded on entities but has no behavioral effect:
// late-joining readers never receive samples written before they were matched.
type DurabilityKind int

const (
	Volatile DurabilityKind = iota
	TransientLocal
	Transient
	Persistent
)

// Default QoS values, matching the classic DDS defaults for a data reader.
const (
	DefaultHistoryDepth = 1
	DefaultMaxSamples   = 100
)

// QoS is the subset of DDS quality-of-service settings carried by topics,
// writers and readers. Only History and Depth change behavior; Reliability,
// Durability and MaxSamples are stored and reported as-is.
type QoS struct {
	Reliability ReliabilityKind `json:"reliability"`
	Durability  DurabilityKind  `json:"durability"`
	History     HistoryKind     `json:"history"`
	Depth       int             `json:"depth"`
	MaxSamples  int             `json:"max_samples"`
}

// DefaultQoS returns reliable, volatile, keep-last-1 with an advisory
// capacity of 100 samples.
func DefaultQoS() QoS {
	return QoS{
		Reliability: Reliable,
		Durability:  Volatile,
		History:     KeepLast,
		Depth:       DefaultHistoryDepth,
		MaxSamples:  DefaultMaxSamples,
	}
}

// KeepLastQoS returns DefaultQoS with a keep-last history of the given depth.
func KeepLastQoS(depth int) QoS {
	q := DefaultQoS()
	q.History = KeepLast
	q.Depth = depth
	return q
}

// KeepAllQoS returns DefaultQoS with a keep-all history.
func KeepAllQoS() QoS {
	q := DefaultQoS()
	q.History = KeepAll
	return q
}

// Validate reports every invalid field, joined into one error.
func (q QoS) Validate() error {
	var errs []error

	if q.History != KeepLast && q.History != KeepAll {
		errs = append(errs, fmt.Errorf("%w: history kind %d", ErrInvalidQoS, int(q.History)))
	}
	if q.History == KeepLast && q.Depth < 1 {
		errs = append(errs, fmt.Errorf("%w: keep_last depth must be positive, got %d", ErrInvalidQoS, q.Depth))
	}
	if q.MaxSamples < 0 {
		errs = append(errs, fmt.Errorf("%w: max_samples must not be negative, got %d", ErrInvalidQoS, q.MaxSamples))
	}
	if q.Reliability != BestEffort && q.Reliability != Reliable {
		errs = append(errs, fmt.Errorf("%w: reliability kind %d", ErrInvalidQoS, int(q.Reliability)))
	}
	if q.Durability < Volatile || q.Durability > Persistent {
		errs = append(errs, fmt.Errorf("%w: durability kind %d", ErrInvalidQoS, int(q.Durability)))
	}

	return errors.Join(errs...)
}

// normalized fixes values the core cannot work with. A keep-last depth
// below one is raised to one.
func (q QoS) normalized() QoS {
	if q.History == KeepLast && q.Depth < 1 {
		q.Depth = 1
	}
	return q
}

func (k HistoryKind) String() string {
	switch k {
	case KeepLast:
		return "keep_last"
	case KeepAll:
		return "keep_all"
	default:
		return fmt.Sprintf("history(%d)", int(k))
	}
}

// ParseHistoryKind parses "keep_last" or "keep_all".
func ParseHistoryKind(s string) (HistoryKind, error) {
	switch s {
	case "keep_last", "KEEP_LAST":
		return KeepLast, nil
	case "keep_all", "KEEP_ALL":
		return KeepAll, nil
	}
	return 0, fmt.Errorf("%w: history %q", ErrUnknownKind, s)
}

func (k HistoryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *HistoryKind) UnmarshalText(text []byte) error {
	v, err := ParseHistoryKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k ReliabilityKind) String() string {
	switch k {
	case BestEffort:
		return "best_effort"
	case Reliable:
		return "reliable"
	default:
		return fmt.Sprintf("reliability(%d)", int(k))
	}
}

// ParseReliabilityKind parses "best_effort" or "reliable".
func ParseReliabilityKind(s string) (ReliabilityKind, error) {
	switch s {
	case "best_effort", "BEST_EFFORT":
		return BestEffort, nil
	case "reliable", "RELIABLE":
		return Reliable, nil
	}
	return 0, fmt.Errorf("%w: reliability %q", ErrUnknownKind, s)
}

func (k ReliabilityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ReliabilityKind) UnmarshalText(text []byte) error {
	v, err := ParseReliabilityKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k DurabilityKind) String() string {
	switch k {
	case Volatile:
		return "volatile"
	case TransientLocal:
		return "transient_local"
	case Transient:
		return "transient"
	case Persistent:
		return "persistent"
	default:
		return fmt.Sprintf("durability(%d)", int(k))
	}
}

// ParseDurabilityKind parses "volatile", "transient_local", "transient" or "persistent".
func ParseDurabilityKind(s string) (DurabilityKind, error) {
	switch s {
	case "volatile", "VOLATILE":
		return Volatile, nil
	case "transient_local", "TRANSIENT_LOCAL":
		return TransientLocal, nil
	case "transient", "TRANSIENT":
		return Transient, nil
	case "persistent", "PERSISTENT":
		return Persistent, nil
	}
	return 0, fmt.Errorf("%w: durability %q", ErrUnknownKind, s)
}

func (k DurabilityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DurabilityKind) UnmarshalText(text []byte) error {
	v, err := ParseDurabilityKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
