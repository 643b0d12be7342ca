// Package health provides HTTP probe handlers for processes embedding the
// DDS core.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: every Check passes
//   - NoContent: 204 for minimal overhead
//
// Usage:
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /health/live", health.Liveness())
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		health.ParticipantOpen(participant),
//		health.WriterAlive(writer),
//	))
//
// Custom checks follow the func(context.Context) error signature.
package health
