package dds

import "github.com/google/uuid"

// Topic is a named channel binding a type name and a default QoS.
// Writers and readers match only by Name; TypeName is descriptive and no
// runtime type checking is performed.
type Topic struct {
	guid     uuid.UUID
	name     string
	typeName string
	qos      QoS
}

// NewTopic creates a standalone topic. Most callers should use
// DomainParticipant.CreateTopic, which deduplicates topics by name.
func NewTopic(name, typeName string, qos QoS) *Topic {
	return &Topic{
		guid:     uuid.New(),
		name:     name,
		typeName: typeName,
		qos:      qos,
	}
}

// Name returns the topic name used for matching.
func (t *Topic) Name() string { return t.name }

// TypeName returns the descriptive type name.
func (t *Topic) TypeName() string { return t.typeName }

// QoS returns the default QoS inherited by writers and readers.
func (t *Topic) QoS() QoS { return t.qos }

// GUID returns the topic's identifier.
func (t *Topic) GUID() uuid.UUID { return t.guid }
