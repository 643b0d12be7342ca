package dds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/dds"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	t.Run("same topic name matches", func(t *testing.T) {
		t.Parallel()

		// distinct topic objects with the same name and different type names
		w := dds.NewDataWriter(dds.NewTopic("T", "A", dds.DefaultQoS()), dds.DefaultQoS())
		r := dds.NewDataReader(dds.NewTopic("T", "B", dds.DefaultQoS()), dds.KeepAllQoS())

		assert.True(t, dds.Match(w, r))
		assert.Equal(t, 1, w.MatchedReaders())

		require.NoError(t, w.Write(msg("x")))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("different topic names do not match", func(t *testing.T) {
		t.Parallel()

		w := dds.NewDataWriter(dds.NewTopic("T1", "message", dds.DefaultQoS()), dds.DefaultQoS())
		r := dds.NewDataReader(dds.NewTopic("T2", "message", dds.DefaultQoS()), dds.KeepAllQoS())

		assert.False(t, dds.Match(w, r))
		require.NoError(t, w.Write(msg("x")))
		assert.Equal(t, 0, r.Count())
	})

	t.Run("incompatible qos still matches", func(t *testing.T) {
		t.Parallel()

		wq := dds.DefaultQoS()
		wq.Reliability = dds.BestEffort
		rq := dds.KeepAllQoS()
		rq.Reliability = dds.Reliable
		rq.Durability = dds.Persistent

		w := dds.NewDataWriter(dds.NewTopic("T", "message", wq), wq)
		r := dds.NewDataReader(dds.NewTopic("T", "message", rq), rq)
		assert.True(t, dds.Match(w, r))
	})

	t.Run("matching twice delivers once", func(t *testing.T) {
		t.Parallel()

		w, r := pair(t, dds.KeepAllQoS())
		assert.True(t, dds.Match(w, r))
		assert.Equal(t, 1, w.MatchedReaders())

		require.NoError(t, w.Write(msg("x")))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("nil entities", func(t *testing.T) {
		t.Parallel()

		w, r := pair(t, dds.KeepAllQoS())
		assert.False(t, dds.Match(nil, r))
		assert.False(t, dds.Match(w, nil))
	})
}
