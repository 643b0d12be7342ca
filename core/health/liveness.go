package health

import "net/http"

// Liveness indicates the process is running. Always 200 "ALIVE"; no
// dependency checks.
//
// Example:
//
//	mux.Handle("GET /health/live", health.Liveness())
func Liveness() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "ALIVE")
	})
}

// NoContent returns 204 without a body, for high-frequency probes.
func NoContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
