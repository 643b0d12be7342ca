package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/dds/core/dds"
)

// Collector exports the Stats snapshots of every writer and reader owned by a
// DomainParticipant. Values are read at scrape time; nothing is cached.
type Collector struct {
	participant *dds.DomainParticipant

	writerWritten    *prometheus.Desc
	writerDeliveries *prometheus.Desc
	writerMatched    *prometheus.Desc
	readerReceived   *prometheus.Desc
	readerTaken      *prometheus.Desc
	readerEvicted    *prometheus.Desc
	readerDropped    *prometheus.Desc
	readerQueue      *prometheus.Desc
	topics           *prometheus.Desc
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
}

// WithNamespace replaces the default "dds" metric name prefix.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// NewCollector creates a collector for p. Register it with a prometheus
// registry; the participant's domain ID is attached as a constant label.
func NewCollector(p *dds.DomainParticipant, opts ...Option) *Collector {
	o := options{namespace: "dds"}
	for _, opt := range opts {
		opt(&o)
	}

	labels := []string{"topic", "guid"}
	constLabels := prometheus.Labels{"domain": strconv.Itoa(p.DomainID())}
	desc := func(subsystem, name, help string, variable []string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(o.namespace, subsystem, name), help, variable, constLabels)
	}

	return &Collector{
		participant:      p,
		writerWritten:    desc("writer", "samples_written_total", "Samples published by the writer.", labels),
		writerDeliveries: desc("writer", "deliveries_total", "Samples accepted by matched readers.", labels),
		writerMatched:    desc("writer", "matched_readers", "Readers currently matched to the writer.", labels),
		readerReceived:   desc("reader", "samples_received_total", "Samples accepted into the reader queue.", labels),
		readerTaken:      desc("reader", "samples_taken_total", "Samples removed from the reader queue by take.", labels),
		readerEvicted:    desc("reader", "samples_evicted_total", "Samples evicted by keep-last history overflow.", labels),
		readerDropped:    desc("reader", "samples_dropped_total", "Samples discarded because the reader was deleted.", labels),
		readerQueue:      desc("reader", "queue_length", "Samples currently queued in the reader.", labels),
		topics:           desc("participant", "topics", "Topics registered with the participant.", nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.writerWritten
	ch <- c.writerDeliveries
	ch <- c.writerMatched
	ch <- c.readerReceived
	ch <- c.readerTaken
	ch <- c.readerEvicted
	ch <- c.readerDropped
	ch <- c.readerQueue
	ch <- c.topics
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, w := range c.participant.Writers() {
		s := w.Stats()
		topic, guid := w.Topic().Name(), w.GUID().String()

		ch <- prometheus.MustNewConstMetric(c.writerWritten, prometheus.CounterValue, float64(s.SamplesWritten), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.writerDeliveries, prometheus.CounterValue, float64(s.Deliveries), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.writerMatched, prometheus.GaugeValue, float64(s.MatchedReaders), topic, guid)
	}

	for _, r := range c.participant.Readers() {
		s := r.Stats()
		topic, guid := r.Topic().Name(), r.GUID().String()

		ch <- prometheus.MustNewConstMetric(c.readerReceived, prometheus.CounterValue, float64(s.Received), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.readerTaken, prometheus.CounterValue, float64(s.Taken), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.readerEvicted, prometheus.CounterValue, float64(s.Evicted), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.readerDropped, prometheus.CounterValue, float64(s.Dropped), topic, guid)
		ch <- prometheus.MustNewConstMetric(c.readerQueue, prometheus.GaugeValue, float64(s.Queued), topic, guid)
	}

	ch <- prometheus.MustNewConstMetric(c.topics, prometheus.GaugeValue, float64(c.participant.Stats().Topics))
}
