package dds

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dds/core/logger"
)

// Subscriber creates and owns data readers.
type Subscriber struct {
	guid        uuid.UUID
	participant *DomainParticipant
	defaultQoS  *QoS
	logger      *slog.Logger

	mu      sync.Mutex
	readers []*DataReader
	closed  bool
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

// WithSubscriberDefaultQoS sets the QoS applied to readers created without
// WithReaderQoS. Without it readers inherit the topic QoS.
func WithSubscriberDefaultQoS(qos QoS) SubscriberOption {
	return func(s *Subscriber) {
		s.defaultQoS = &qos
	}
}

// WithSubscriberLogger overrides the logger inherited from the participant.
func WithSubscriberLogger(logger *slog.Logger) SubscriberOption {
	return func(s *Subscriber) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSubscriber(participant *DomainParticipant, opts ...SubscriberOption) *Subscriber {
	sub := &Subscriber{
		guid:        uuid.New(),
		participant: participant,
		logger:      participant.logger,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// GUID returns the subscriber's identifier.
func (s *Subscriber) GUID() uuid.UUID { return s.guid }

// Participant returns the participant that created the subscriber.
func (s *Subscriber) Participant() *DomainParticipant { return s.participant }

// CreateDataReader creates a reader for topic. QoS resolution order is
// WithReaderQoS, then the subscriber default, then the topic QoS.
// The reader receives nothing until it is matched to a writer.
func (s *Subscriber) CreateDataReader(topic *Topic, opts ...ReaderOption) (*DataReader, error) {
	if topic == nil {
		return nil, ErrNilTopic
	}

	cfg := readerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	qos := topic.QoS()
	switch {
	case cfg.qos != nil:
		qos = *cfg.qos
	case s.defaultQoS != nil:
		qos = *s.defaultQoS
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrEntityClosed
	}

	r := NewDataReader(topic, qos, append([]ReaderOption{WithReaderLogger(s.logger)}, opts...)...)
	if err := s.participant.addReader(r); err != nil {
		r.markDeleted()
		return nil, err
	}

	s.readers = append(s.readers, r)
	s.logger.Debug("data reader created",
		logger.Topic(topic.Name()),
		logger.GUID(r.GUID()),
		logger.History(r.QoS().History),
		logger.Depth(r.QoS().Depth))
	return r, nil
}

// DeleteDataReader unregisters r from every writer it was matched to, clears
// its queue and marks it deleted. A write racing with the deletion is either
// delivered before the queue is cleared or dropped. Returns false for readers
// this subscriber did not create.
func (s *Subscriber) DeleteDataReader(r *DataReader) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.readers, r)
	if i < 0 {
		return false
	}

	s.readers = slices.Delete(s.readers, i, i+1)
	s.participant.forgetReader(r)
	s.logger.Debug("data reader deleted",
		logger.Topic(r.Topic().Name()),
		logger.GUID(r.GUID()))
	return true
}

// DataReaders returns a snapshot of the subscriber's readers.
func (s *Subscriber) DataReaders() []*DataReader {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.readers)
}

// Delete removes the subscriber and all of its readers from the participant.
func (s *Subscriber) Delete() {
	s.close()
	s.participant.removeSubscriber(s)
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for _, r := range s.readers {
		s.participant.forgetReader(r)
	}
	s.readers = nil
}
