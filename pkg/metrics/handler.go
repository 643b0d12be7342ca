package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/dds/core/dds"
)

// Handler returns an http.Handler serving /metrics for p on a dedicated
// registry, together with Go runtime and process metrics.
func Handler(p *dds.DomainParticipant, opts ...Option) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewCollector(p, opts...),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}
