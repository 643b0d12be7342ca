package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Attribute helpers return an empty Attr for absent values, so calls like
// log.Info("msg", logger.Error(err)) need no nil checks. slog drops empty Attrs.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Errors
// ============================================================================

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by argument index.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the time passed since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Data distribution
// ============================================================================

// DomainID creates an attribute for a participant's domain.
func DomainID(id int) slog.Attr {
	return slog.Int("domain_id", id)
}

// Topic creates an attribute for a topic name.
func Topic(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("topic", name)
}

// TypeName creates an attribute for a topic's type name.
func TypeName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("type_name", name)
}

// GUID creates an attribute for an entity identifier.
func GUID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("guid", id.String())
}

// Sequence creates an attribute for a sample sequence handle.
func Sequence(seq int64) slog.Attr {
	return slog.Int64("sequence", seq)
}

// Depth creates an attribute for a keep-last history depth.
func Depth(depth int) slog.Attr {
	return slog.Int("depth", depth)
}

// History creates an attribute for a history kind.
func History(kind fmt.Stringer) slog.Attr {
	if kind == nil {
		return slog.Attr{}
	}
	return slog.String("history", kind.String())
}

// ============================================================================
// Generic metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
