package dds

import "errors"

var (
	// ErrNilSample is returned when Write is called with a nil sample.
	ErrNilSample = errors.New("dds: sample must not be nil")

	// ErrNilTopic is returned when an entity is created without a topic.
	ErrNilTopic = errors.New("dds: topic must not be nil")

	// ErrEmptyTopicName is returned when a topic is created with an empty name.
	ErrEmptyTopicName = errors.New("dds: topic name must not be empty")

	// ErrWriterDeleted is returned by Write after the writer was deleted from its publisher.
	ErrWriterDeleted = errors.New("dds: data writer deleted")

	// ErrParticipantClosed is returned when creating entities on a closed participant.
	ErrParticipantClosed = errors.New("dds: domain participant closed")

	// ErrEntityClosed is returned when creating entities on a deleted publisher or subscriber.
	ErrEntityClosed = errors.New("dds: entity closed")

	// ErrInvalidQoS wraps every QoS validation failure.
	ErrInvalidQoS = errors.New("dds: invalid qos")

	// ErrUnknownKind is returned when parsing an unrecognised QoS kind name.
	ErrUnknownKind = errors.New("dds: unknown qos kind")
)
