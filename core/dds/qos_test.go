package dds_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/dds"
)

func TestDefaultQoS(t *testing.T) {
	t.Parallel()

	q := dds.DefaultQoS()
	assert.Equal(t, dds.Reliable, q.Reliability)
	assert.Equal(t, dds.Volatile, q.Durability)
	assert.Equal(t, dds.KeepLast, q.History)
	assert.Equal(t, 1, q.Depth)
	assert.Equal(t, 100, q.MaxSamples)
	assert.NoError(t, q.Validate())

	assert.Equal(t, 10, dds.KeepLastQoS(10).Depth)
	assert.Equal(t, dds.KeepAll, dds.KeepAllQoS().History)
}

func TestQoS_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*dds.QoS)
		wantErr bool
	}{
		{name: "default", mutate: func(*dds.QoS) {}},
		{name: "keep all ignores depth", mutate: func(q *dds.QoS) { q.History = dds.KeepAll; q.Depth = 0 }},
		{name: "zero depth", mutate: func(q *dds.QoS) { q.Depth = 0 }, wantErr: true},
		{name: "negative max samples", mutate: func(q *dds.QoS) { q.MaxSamples = -1 }, wantErr: true},
		{name: "unknown history", mutate: func(q *dds.QoS) { q.History = 9 }, wantErr: true},
		{name: "unknown reliability", mutate: func(q *dds.QoS) { q.Reliability = 9 }, wantErr: true},
		{name: "unknown durability", mutate: func(q *dds.QoS) { q.Durability = 9 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := dds.DefaultQoS()
			tt.mutate(&q)

			err := q.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, dds.ErrInvalidQoS)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQoS_ValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	q := dds.QoS{History: dds.KeepLast, Depth: 0, MaxSamples: -1}
	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth")
	assert.Contains(t, err.Error(), "max_samples")
}

func TestKinds_ParseAndString(t *testing.T) {
	t.Parallel()

	h, err := dds.ParseHistoryKind("KEEP_ALL")
	require.NoError(t, err)
	assert.Equal(t, dds.KeepAll, h)
	assert.Equal(t, "keep_all", h.String())

	r, err := dds.ParseReliabilityKind("best_effort")
	require.NoError(t, err)
	assert.Equal(t, dds.BestEffort, r)
	assert.Equal(t, "best_effort", r.String())

	d, err := dds.ParseDurabilityKind("transient_local")
	require.NoError(t, err)
	assert.Equal(t, dds.TransientLocal, d)
	assert.Equal(t, "transient_local", d.String())

	_, err = dds.ParseHistoryKind("forever")
	assert.ErrorIs(t, err, dds.ErrUnknownKind)
	_, err = dds.ParseReliabilityKind("")
	assert.ErrorIs(t, err, dds.ErrUnknownKind)
	_, err = dds.ParseDurabilityKind("volatile!")
	assert.ErrorIs(t, err, dds.ErrUnknownKind)

	assert.Equal(t, "history(7)", dds.HistoryKind(7).String())
}

func TestQoS_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dds.KeepLastQoS(5))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"reliability": "reliable",
		"durability": "volatile",
		"history": "keep_last",
		"depth": 5,
		"max_samples": 100
	}`, string(data))

	var q dds.QoS
	require.NoError(t, json.Unmarshal([]byte(`{"history":"KEEP_ALL","reliability":"best_effort"}`), &q))
	assert.Equal(t, dds.KeepAll, q.History)
	assert.Equal(t, dds.BestEffort, q.Reliability)

	assert.Error(t, json.Unmarshal([]byte(`{"history":"sometimes"}`), &q))
}
