package dds

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dds/core/logger"
)

// DataReader receives samples from matched writers into a bounded history
// queue and exposes take/read/count over it.
type DataReader struct {
	guid   uuid.UUID
	topic  *Topic
	qos    QoS
	logger *slog.Logger

	mu       sync.Mutex
	queue    *ReaderQueue
	listener Listener
	writers  []*DataWriter // writers this reader is registered on
	deleted  bool
	stats    ReaderStats
}

// ReaderStats provides observability counters for one reader.
type ReaderStats struct {
	Received       int64     // samples accepted into the queue
	Taken          int64     // samples removed by Take
	Read           int64     // successful non-destructive reads
	Evicted        int64     // samples dropped by keep-last overflow
	Dropped        int64     // samples discarded because the reader was deleted
	Queued         int       // current queue length
	LastReceivedAt time.Time // zero until the first delivery
}

// ReaderOption configures a DataReader.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	qos      *QoS
	logger   *slog.Logger
	listener Listener
}

// WithReaderQoS overrides the QoS a Subscriber would otherwise apply.
// Ignored by NewDataReader, which takes the QoS explicitly.
func WithReaderQoS(qos QoS) ReaderOption {
	return func(c *readerConfig) {
		c.qos = &qos
	}
}

// WithReaderLogger sets the logger for reader diagnostics.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(c *readerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) ReaderOption {
	return func(c *readerConfig) {
		c.listener = l
	}
}

// NewDataReader creates a reader for topic with the given retention policy.
// The reader receives nothing until a writer is matched to it.
// Panics if topic is nil.
func NewDataReader(topic *Topic, qos QoS, opts ...ReaderOption) *DataReader {
	if topic == nil {
		panic(ErrNilTopic)
	}

	cfg := readerConfig{
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	qos = qos.normalized()
	guid := uuid.New()

	return &DataReader{
		guid:     guid,
		topic:    topic,
		qos:      qos,
		queue:    NewReaderQueue(qos),
		listener: cfg.listener,
		logger: cfg.logger.With(
			logger.Component("data_reader"),
			logger.Topic(topic.Name()),
			logger.GUID(guid),
		),
	}
}

// Take removes and returns the oldest queued sample.
// ok is false when the queue is empty; that is not an error.
func (r *DataReader) Take() (Sample, SampleInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, info, ok := r.queue.PopFront()
	if ok {
		r.stats.Taken++
	}
	return s, info, ok
}

// Read returns the oldest queued sample without removing it.
func (r *DataReader) Read() (Sample, SampleInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, info, ok := r.queue.PeekFront()
	if ok {
		r.stats.Read++
	}
	return s, info, ok
}

// Count returns the queue length at the time of the call.
func (r *DataReader) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.queue.Len()
}

// SetListener replaces the reader's listener. A nil listener disables notification.
func (r *DataReader) SetListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listener = l
}

// Topic returns the topic the reader subscribes to.
func (r *DataReader) Topic() *Topic { return r.topic }

// QoS returns the reader's QoS after normalization, so a keep-last depth is
// at least one.
func (r *DataReader) QoS() QoS { return r.qos }

// GUID returns the reader's identifier.
func (r *DataReader) GUID() uuid.UUID { return r.guid }

// IsDeleted reports whether the reader was deleted from its subscriber.
func (r *DataReader) IsDeleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deleted
}

// Stats returns a snapshot of the reader counters.
func (r *DataReader) Stats() ReaderStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats
	s.Queued = r.queue.Len()
	return s
}

// push stores one delivered sample under the reader lock and returns the
// listener to notify once the caller has released every lock. A deleted
// reader drops the sample silently and reports ok=false.
func (r *DataReader) push(s Sample, info SampleInfo) (Listener, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		r.stats.Dropped++
		return nil, false
	}

	if evicted := r.queue.Push(s, info); evicted > 0 {
		r.stats.Evicted += int64(evicted)
		r.logger.Debug("history overflow, oldest samples evicted",
			logger.Count("evicted", evicted),
			logger.Depth(r.qos.Depth))
	}

	r.stats.Received++
	r.stats.LastReceivedAt = info.SourceTimestamp
	return r.listener, true
}

// attachWriter records w as a writer this reader is registered on. Called
// with w.mu held. Returns false once the reader is deleted.
func (r *DataReader) attachWriter(w *DataWriter) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return false
	}
	if !slices.Contains(r.writers, w) {
		r.writers = append(r.writers, w)
	}
	return true
}

// detachWriter forgets w. Called with w.mu held.
func (r *DataReader) detachWriter(w *DataWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writers = slices.DeleteFunc(r.writers, func(x *DataWriter) bool { return x == w })
}

// markDeleted clears the queue and makes further pushes drop silently. It
// returns the writers the reader is still registered on; the caller must
// unregister it from them without holding r.mu.
func (r *DataReader) markDeleted() []*DataWriter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return nil
	}

	r.deleted = true
	r.listener = nil
	writers := r.writers
	r.writers = nil
	if n := r.queue.Clear(); n > 0 {
		r.stats.Dropped += int64(n)
		r.logger.Debug("reader deleted with undelivered samples", logger.Count("dropped", n))
	}
	return writers
}
