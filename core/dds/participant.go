package dds

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/dds/core/logger"
)

// DomainParticipant is the registry for one domain: it owns the topic arena,
// creates publishers and subscribers, and records which writers were matched
// to which readers so deleting an entity can undo its associations.
//
// Lock order: Publisher/Subscriber -> DomainParticipant -> DataWriter -> DataReader.
type DomainParticipant struct {
	guid     uuid.UUID
	domainID int
	logger   *slog.Logger

	mu           sync.Mutex
	topics       map[string]*Topic
	publishers   []*Publisher
	subscribers  []*Subscriber
	writers      []*DataWriter
	readers      []*DataReader
	topicWriters map[string][]*DataWriter
	matches      map[*DataReader][]*DataWriter
	closed       bool
}

// ParticipantStats summarizes the participant's registry.
type ParticipantStats struct {
	DomainID    int
	Topics      int
	Publishers  int
	Subscribers int
	Writers     int
	Readers     int
	Matches     int // writer-reader associations recorded by the participant
	IsClosed    bool
}

// ParticipantOption configures a DomainParticipant.
type ParticipantOption func(*DomainParticipant)

// WithParticipantLogger sets the logger inherited by every entity the
// participant creates.
func WithParticipantLogger(logger *slog.Logger) ParticipantOption {
	return func(p *DomainParticipant) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewDomainParticipant creates a participant for domainID.
//
// Example:
//
//	p := dds.NewDomainParticipant(0)
//	defer p.Close()
//
//	topic, _ := p.CreateTopic("SensorTopic", "SensorData", dds.KeepLastQoS(10))
//	pub, _ := p.CreatePublisher()
//	sub, _ := p.CreateSubscriber()
//	w, _ := pub.CreateDataWriter(topic)
//	r, _ := sub.CreateDataReader(topic)
//	p.MatchWriterReader(w, r)
func NewDomainParticipant(domainID int, opts ...ParticipantOption) *DomainParticipant {
	p := &DomainParticipant{
		guid:         uuid.New(),
		domainID:     domainID,
		logger:       logger.Discard(),
		topics:       make(map[string]*Topic),
		topicWriters: make(map[string][]*DataWriter),
		matches:      make(map[*DataReader][]*DataWriter),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.With(logger.DomainID(domainID))
	return p
}

// DomainID returns the domain the participant was created for.
func (p *DomainParticipant) DomainID() int { return p.domainID }

// GUID returns the participant's identifier.
func (p *DomainParticipant) GUID() uuid.UUID { return p.guid }

// CreateTopic returns the topic registered under name, creating it on first
// use. An existing topic is returned unchanged even if typeName or qos differ.
func (p *DomainParticipant) CreateTopic(name, typeName string, qos QoS) (*Topic, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyTopicName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrParticipantClosed
	}

	if t, ok := p.topics[name]; ok {
		if t.TypeName() != typeName {
			p.logger.Warn("topic already exists with a different type name",
				logger.Topic(name),
				logger.TypeName(t.TypeName()),
				slog.String("requested_type_name", typeName))
		}
		return t, nil
	}

	t := NewTopic(name, typeName, qos)
	p.topics[name] = t
	p.logger.Debug("topic created",
		logger.Topic(name),
		logger.TypeName(typeName),
		logger.History(qos.History),
		logger.Depth(qos.Depth))
	return t, nil
}

// FindTopic looks a topic up by name.
func (p *DomainParticipant) FindTopic(name string) (*Topic, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.topics[name]
	return t, ok
}

// Topics returns every registered topic sorted by name.
func (p *DomainParticipant) Topics() []*Topic {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Topic, 0, len(p.topics))
	for _, t := range p.topics {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Topic) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// CreatePublisher creates a publisher owned by this participant.
func (p *DomainParticipant) CreatePublisher(opts ...PublisherOption) (*Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrParticipantClosed
	}

	pub := newPublisher(p, opts...)
	p.publishers = append(p.publishers, pub)
	return pub, nil
}

// CreateSubscriber creates a subscriber owned by this participant.
func (p *DomainParticipant) CreateSubscriber(opts ...SubscriberOption) (*Subscriber, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrParticipantClosed
	}

	sub := newSubscriber(p, opts...)
	p.subscribers = append(p.subscribers, sub)
	return sub, nil
}

// MatchWriterReader matches w and r when their topic names are equal and
// records the association. Returns false for different topics, for a deleted
// writer or reader, and on a closed participant.
func (p *DomainParticipant) MatchWriterReader(w *DataWriter, r *DataReader) bool {
	if w == nil || r == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !Match(w, r) {
		return false
	}

	p.record(w, r)
	p.logger.Debug("writer matched to reader",
		logger.Topic(w.Topic().Name()),
		slog.String("writer", w.GUID().String()),
		slog.String("reader", r.GUID().String()))
	return true
}

// MatchTopic matches every writer and reader created through this
// participant on the named topic and returns the number of new associations.
func (p *DomainParticipant) MatchTopic(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, w := range p.writers {
		if w.Topic().Name() != name {
			continue
		}
		for _, r := range p.readers {
			if r.Topic().Name() != name {
				continue
			}
			if w.RegisterReader(r) {
				p.record(w, r)
				n++
			}
		}
	}

	if n > 0 {
		p.logger.Debug("topic matched", logger.Topic(name), logger.Count("new_matches", n))
	}
	return n
}

// Writers returns the writers created through this participant that are not deleted.
func (p *DomainParticipant) Writers() []*DataWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.writers)
}

// Readers returns the readers created through this participant that are not deleted.
func (p *DomainParticipant) Readers() []*DataReader {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.readers)
}

// Stats returns a snapshot of the registry sizes.
func (p *DomainParticipant) Stats() ParticipantStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	matches := 0
	for _, ws := range p.matches {
		matches += len(ws)
	}

	return ParticipantStats{
		DomainID:    p.domainID,
		Topics:      len(p.topics),
		Publishers:  len(p.publishers),
		Subscribers: len(p.subscribers),
		Writers:     len(p.writers),
		Readers:     len(p.readers),
		Matches:     matches,
		IsClosed:    p.closed,
	}
}

// Close deletes every publisher and subscriber with their entities. Further
// creation calls return ErrParticipantClosed. Close is idempotent.
func (p *DomainParticipant) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := p.publishers
	subs := p.subscribers
	p.publishers = nil
	p.subscribers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.close()
	}
	for _, sub := range subs {
		sub.close()
	}

	p.logger.Debug("domain participant closed",
		logger.Count("publishers", len(pubs)),
		logger.Count("subscribers", len(subs)))
	return nil
}

// record stores a writer-reader association. Caller holds p.mu.
func (p *DomainParticipant) record(w *DataWriter, r *DataReader) {
	name := w.Topic().Name()
	if !slices.Contains(p.topicWriters[name], w) {
		p.topicWriters[name] = append(p.topicWriters[name], w)
	}
	if !slices.Contains(p.matches[r], w) {
		p.matches[r] = append(p.matches[r], w)
	}
}

func (p *DomainParticipant) addWriter(w *DataWriter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrParticipantClosed
	}
	p.writers = append(p.writers, w)
	return nil
}

func (p *DomainParticipant) addReader(r *DataReader) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrParticipantClosed
	}
	p.readers = append(p.readers, r)
	return nil
}

// forgetWriter removes every trace of w and marks it deleted.
func (p *DomainParticipant) forgetWriter(w *DataWriter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.writers = slices.DeleteFunc(p.writers, func(x *DataWriter) bool { return x == w })

	name := w.Topic().Name()
	p.topicWriters[name] = slices.DeleteFunc(p.topicWriters[name], func(x *DataWriter) bool { return x == w })
	if len(p.topicWriters[name]) == 0 {
		delete(p.topicWriters, name)
	}

	for r, ws := range p.matches {
		ws = slices.DeleteFunc(ws, func(x *DataWriter) bool { return x == w })
		if len(ws) == 0 {
			delete(p.matches, r)
		} else {
			p.matches[r] = ws
		}
	}

	w.markDeleted()
}

// forgetReader marks r deleted and unregisters it from every writer it is
// registered on.
func (p *DomainParticipant) forgetReader(r *DataReader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.matches, r)
	p.readers = slices.DeleteFunc(p.readers, func(x *DataReader) bool { return x == r })

	// Covers writers matched outside the participant too.
	for _, w := range r.markDeleted() {
		w.UnregisterReader(r)
	}
}

func (p *DomainParticipant) removePublisher(pub *Publisher) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.publishers = slices.DeleteFunc(p.publishers, func(x *Publisher) bool { return x == pub })
}

func (p *DomainParticipant) removeSubscriber(sub *Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers = slices.DeleteFunc(p.subscribers, func(x *Subscriber) bool { return x == sub })
}
