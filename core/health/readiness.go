package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/dds/core/logger"
)

// Check reports whether one dependency is usable.
type Check func(context.Context) error

// Readiness runs every check with the request context. Returns 200 "READY"
// when all pass and 503 on the first failure.
//
// Example:
//
//	mux.Handle("GET /health/ready", health.Readiness(log, health.ParticipantOpen(participant)))
func Readiness(log *slog.Logger, checks ...Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				writeText(w, http.StatusServiceUnavailable, "NOT READY")
				return
			}
		}

		writeText(w, http.StatusOK, "READY")
	})
}
