// Package metrics exposes DDS entity statistics as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(metrics.NewCollector(participant))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Writer and reader series carry topic and guid labels. Deleted entities
// disappear from the next scrape.
package metrics
