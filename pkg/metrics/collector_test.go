package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/dds"
	"github.com/dmitrymomot/dds/pkg/metrics"
)

type note string

func (n note) Clone() dds.Sample { return n }
func (n note) String() string    { return string(n) }

func setup(t *testing.T) (*dds.DomainParticipant, *dds.DataWriter, *dds.DataReader) {
	t.Helper()

	p := dds.NewDomainParticipant(3)
	t.Cleanup(func() { _ = p.Close() })

	topic, err := p.CreateTopic("Notes", "note", dds.KeepLastQoS(2))
	require.NoError(t, err)
	pub, err := p.CreatePublisher()
	require.NoError(t, err)
	sub, err := p.CreateSubscriber()
	require.NoError(t, err)
	w, err := pub.CreateDataWriter(topic)
	require.NoError(t, err)
	r, err := sub.CreateDataReader(topic)
	require.NoError(t, err)
	require.Equal(t, 1, p.MatchTopic("Notes"))

	return p, w, r
}

func gather(t *testing.T, c prometheus.Collector) map[string]*dto.MetricFamily {
	t.Helper()

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestCollector(t *testing.T) {
	t.Parallel()

	p, w, r := setup(t)
	for _, n := range []note{"a", "b", "c"} {
		require.NoError(t, w.Write(n))
	}
	_, _, ok := r.Take()
	require.True(t, ok)

	families := gather(t, metrics.NewCollector(p))

	values := map[string]float64{}
	for name, f := range families {
		require.Len(t, f.GetMetric(), 1, name)
		m := f.GetMetric()[0]
		assert.Equal(t, "3", label(m, "domain"), name)

		switch f.GetType() {
		case dto.MetricType_COUNTER:
			values[name] = m.GetCounter().GetValue()
		case dto.MetricType_GAUGE:
			values[name] = m.GetGauge().GetValue()
		}

		if strings.HasPrefix(name, "dds_writer_") {
			assert.Equal(t, "Notes", label(m, "topic"))
			assert.Equal(t, w.GUID().String(), label(m, "guid"))
		}
		if strings.HasPrefix(name, "dds_reader_") {
			assert.Equal(t, r.GUID().String(), label(m, "guid"))
		}
	}

	assert.Equal(t, map[string]float64{
		"dds_writer_samples_written_total":  3,
		"dds_writer_deliveries_total":       3,
		"dds_writer_matched_readers":        1,
		"dds_reader_samples_received_total": 3,
		"dds_reader_samples_taken_total":    1,
		"dds_reader_samples_evicted_total":  1,
		"dds_reader_samples_dropped_total":  0,
		"dds_reader_queue_length":           1,
		"dds_participant_topics":            1,
	}, values)
}

func TestCollector_Namespace(t *testing.T) {
	t.Parallel()

	p, _, _ := setup(t)

	expected := `
# HELP app_participant_topics Topics registered with the participant.
# TYPE app_participant_topics gauge
app_participant_topics{domain="3"} 1
`
	err := testutil.CollectAndCompare(metrics.NewCollector(p, metrics.WithNamespace("app")),
		strings.NewReader(expected), "app_participant_topics")
	assert.NoError(t, err)
}

func TestCollector_DeletedEntitiesDisappear(t *testing.T) {
	t.Parallel()

	p, _, _ := setup(t)
	c := metrics.NewCollector(p)

	assert.Equal(t, 9, testutil.CollectAndCount(c))

	require.NoError(t, p.Close())
	assert.Equal(t, 1, testutil.CollectAndCount(c))
}

func TestCollector_Lint(t *testing.T) {
	t.Parallel()

	p, _, _ := setup(t)

	problems, err := testutil.CollectAndLint(metrics.NewCollector(p))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	p, w, _ := setup(t)
	require.NoError(t, w.Write(note("x")))

	rec := httptest.NewRecorder()
	metrics.Handler(p).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `dds_writer_samples_written_total{domain="3",guid="`+w.GUID().String()+`",topic="Notes"} 1`)
	assert.Contains(t, body, "go_goroutines")

	rec = httptest.NewRecorder()
	metrics.Handler(p).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
