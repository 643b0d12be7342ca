package health

import (
	"context"

	"github.com/dmitrymomot/dds/core/dds"
)

// ParticipantOpen fails once the participant has been closed.
func ParticipantOpen(p *dds.DomainParticipant) Check {
	return func(context.Context) error {
		if p.Stats().IsClosed {
			return dds.ErrParticipantClosed
		}
		return nil
	}
}

// WriterAlive fails once the writer has been deleted from its publisher.
func WriterAlive(w *dds.DataWriter) Check {
	return func(context.Context) error {
		if w.IsDeleted() {
			return dds.ErrWriterDeleted
		}
		return nil
	}
}
