package dds

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dds/core/logger"
)

// Publisher creates and owns data writers. Deleting a writer through its
// publisher removes it from the participant registry and rejects further
// writes on it.
type Publisher struct {
	guid        uuid.UUID
	participant *DomainParticipant
	defaultQoS  *QoS
	logger      *slog.Logger

	mu      sync.Mutex
	writers []*DataWriter
	closed  bool
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherDefaultQoS sets the QoS applied to writers created without
// WithWriterQoS. Without it writers inherit the topic QoS.
func WithPublisherDefaultQoS(qos QoS) PublisherOption {
	return func(p *Publisher) {
		p.defaultQoS = &qos
	}
}

// WithPublisherLogger overrides the logger inherited from the participant.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func newPublisher(participant *DomainParticipant, opts ...PublisherOption) *Publisher {
	pub := &Publisher{
		guid:        uuid.New(),
		participant: participant,
		logger:      participant.logger,
	}
	for _, opt := range opts {
		opt(pub)
	}
	return pub
}

// GUID returns the publisher's identifier.
func (p *Publisher) GUID() uuid.UUID { return p.guid }

// Participant returns the participant that created the publisher.
func (p *Publisher) Participant() *DomainParticipant { return p.participant }

// CreateDataWriter creates a writer for topic. QoS resolution order is
// WithWriterQoS, then the publisher default, then the topic QoS.
func (p *Publisher) CreateDataWriter(topic *Topic, opts ...WriterOption) (*DataWriter, error) {
	if topic == nil {
		return nil, ErrNilTopic
	}

	cfg := writerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	qos := topic.QoS()
	switch {
	case cfg.qos != nil:
		qos = *cfg.qos
	case p.defaultQoS != nil:
		qos = *p.defaultQoS
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrEntityClosed
	}

	w := NewDataWriter(topic, qos, append([]WriterOption{WithWriterLogger(p.logger)}, opts...)...)
	if err := p.participant.addWriter(w); err != nil {
		w.markDeleted()
		return nil, err
	}

	p.writers = append(p.writers, w)
	p.logger.Debug("data writer created",
		logger.Topic(topic.Name()),
		logger.GUID(w.GUID()))
	return w, nil
}

// DeleteDataWriter deletes w if this publisher created it. Subsequent writes
// on w return ErrWriterDeleted. Returns false for unknown writers.
func (p *Publisher) DeleteDataWriter(w *DataWriter) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.Index(p.writers, w)
	if i < 0 {
		return false
	}

	p.writers = slices.Delete(p.writers, i, i+1)
	p.participant.forgetWriter(w)
	p.logger.Debug("data writer deleted",
		logger.Topic(w.Topic().Name()),
		logger.GUID(w.GUID()))
	return true
}

// DataWriters returns a snapshot of the publisher's writers.
func (p *Publisher) DataWriters() []*DataWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.writers)
}

// Delete removes the publisher and all of its writers from the participant.
func (p *Publisher) Delete() {
	p.close()
	p.participant.removePublisher(p)
}

func (p *Publisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for _, w := range p.writers {
		p.participant.forgetWriter(w)
	}
	p.writers = nil
}
