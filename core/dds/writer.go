package dds

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dds/core/logger"
)

// DataWriter publishes samples to the readers registered on it.
// It holds plain, non-owning references to readers; reader lifetime is
// governed by their Subscriber.
type DataWriter struct {
	guid   uuid.UUID
	topic  *Topic
	qos    QoS
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	readers  []*DataReader
	sequence int64
	deleted  bool
	stats    WriterStats
}

// WriterStats provides observability counters for one writer.
type WriterStats struct {
	SamplesWritten int64     // successful Write calls
	Deliveries     int64     // samples accepted by readers across all writes
	MatchedReaders int       // currently registered readers
	LastWriteAt    time.Time // zero until the first write
}

// WriterOption configures a DataWriter.
type WriterOption func(*writerConfig)

type writerConfig struct {
	qos    *QoS
	logger *slog.Logger
	now    func() time.Time
}

// WithWriterQoS overrides the QoS a Publisher would otherwise apply.
// Ignored by NewDataWriter, which takes the QoS explicitly.
func WithWriterQoS(qos QoS) WriterOption {
	return func(c *writerConfig) {
		c.qos = &qos
	}
}

// WithWriterLogger sets the logger for writer diagnostics.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now as the source of SampleInfo.SourceTimestamp.
func WithClock(now func() time.Time) WriterOption {
	return func(c *writerConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// NewDataWriter creates a writer for topic. The QoS is recorded but does not
// affect delivery: retention is enforced by each reader's own policy.
// Panics if topic is nil.
func NewDataWriter(topic *Topic, qos QoS, opts ...WriterOption) *DataWriter {
	if topic == nil {
		panic(ErrNilTopic)
	}

	cfg := writerConfig{
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	guid := uuid.New()

	return &DataWriter{
		guid:  guid,
		topic: topic,
		qos:   qos,
		now:   cfg.now,
		logger: cfg.logger.With(
			logger.Component("data_writer"),
			logger.Topic(topic.Name()),
			logger.GUID(guid),
		),
	}
}

// RegisterReader adds r to the writer's matched set and reports whether it
// was added. Registration is keyed by identity: registering the same reader
// twice is a no-op and returns false, as is registering on a deleted writer
// or registering a deleted reader.
func (w *DataWriter) RegisterReader(r *DataReader) bool {
	added, _ := w.attach(r)
	return added
}

// attach registers r and reports whether it was newly added and whether r is
// registered once the call returns. Both are false when the writer or the
// reader is deleted.
func (w *DataWriter) attach(r *DataReader) (added, ok bool) {
	if r == nil {
		return false, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.deleted || !r.attachWriter(w) {
		return false, false
	}
	if slices.Contains(w.readers, r) {
		return false, true
	}

	w.readers = append(w.readers, r)
	w.logger.Debug("reader registered",
		slog.String("reader", r.GUID().String()),
		logger.Count("matched_readers", len(w.readers)))
	return true, true
}

// UnregisterReader removes r by identity. Returns false if r was not registered.
func (w *DataWriter) UnregisterReader(r *DataReader) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := slices.Index(w.readers, r)
	if i < 0 {
		return false
	}

	w.readers = slices.Delete(w.readers, i, i+1)
	r.detachWriter(w)
	w.logger.Debug("reader unregistered",
		slog.String("reader", r.GUID().String()),
		logger.Count("matched_readers", len(w.readers)))
	return true
}

// Write publishes s to every currently registered reader, in registration
// order. Each reader receives its own clone and a copy of one SampleInfo
// stamped for this call. Listeners are invoked after the writer lock is
// released, on the calling goroutine.
//
// Write succeeds once every registered reader has been offered the sample,
// including when no reader is registered. Readers that drop the sample
// because they are being deleted are not reported.
func (w *DataWriter) Write(s Sample) error {
	if s == nil {
		return ErrNilSample
	}

	notify, err := w.deliver(s)
	if err != nil {
		return err
	}

	for _, l := range notify {
		l.OnDataAvailable()
	}
	return nil
}

// deliver performs the locked part of Write and returns the listeners to
// notify.
func (w *DataWriter) deliver(s Sample) ([]Listener, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.deleted {
		return nil, ErrWriterDeleted
	}

	info := SampleInfo{
		ValidData:       true,
		SourceTimestamp: w.now(),
		SequenceHandle:  w.sequence,
		PublicationGUID: w.guid,
	}
	w.sequence++

	var notify []Listener
	delivered := 0
	for _, r := range w.readers {
		l, ok := r.push(s.Clone(), info)
		if !ok {
			continue
		}
		delivered++
		if l != nil {
			notify = append(notify, l)
		}
	}

	w.stats.SamplesWritten++
	w.stats.Deliveries += int64(delivered)
	w.stats.LastWriteAt = info.SourceTimestamp

	w.logger.Debug("sample written",
		logger.Sequence(info.SequenceHandle),
		logger.Count("delivered", delivered))

	return notify, nil
}

// MatchedReaders returns the number of registered readers.
func (w *DataWriter) MatchedReaders() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.readers)
}

// IsDeleted reports whether the writer was deleted from its publisher.
func (w *DataWriter) IsDeleted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.deleted
}

// Topic returns the topic the writer publishes on.
func (w *DataWriter) Topic() *Topic { return w.topic }

// QoS returns the QoS the writer was created with.
func (w *DataWriter) QoS() QoS { return w.qos }

// GUID returns the writer's identifier, stamped on every SampleInfo it produces.
func (w *DataWriter) GUID() uuid.UUID { return w.guid }

// Stats returns a snapshot of the writer counters.
func (w *DataWriter) Stats() WriterStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.stats
	s.MatchedReaders = len(w.readers)
	return s
}

// markDeleted drops every reader association and rejects further writes.
func (w *DataWriter) markDeleted() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.deleted = true
	for _, r := range w.readers {
		r.detachWriter(w)
	}
	w.readers = nil
}
