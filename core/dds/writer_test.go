package dds_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dds/core/dds"
)

func TestNewDataWriter_PanicsOnNilTopic(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, dds.ErrNilTopic, func() {
		dds.NewDataWriter(nil, dds.DefaultQoS())
	})
}

func TestDataWriter_WriteWithoutReaders(t *testing.T) {
	t.Parallel()

	w := dds.NewDataWriter(dds.NewTopic("T", "message", dds.DefaultQoS()), dds.DefaultQoS())

	require.NoError(t, w.Write(msg("A")))
	require.NoError(t, w.Write(msg("B")))

	stats := w.Stats()
	assert.Equal(t, int64(2), stats.SamplesWritten)
	assert.Equal(t, int64(0), stats.Deliveries)
	assert.Equal(t, 0, stats.MatchedReaders)
}

func TestDataWriter_WriteNilSample(t *testing.T) {
	t.Parallel()

	w, r := pair(t, dds.KeepAllQoS())

	assert.ErrorIs(t, w.Write(nil), dds.ErrNilSample)
	assert.Equal(t, 0, r.Count())
	assert.Equal(t, int64(0), w.Stats().SamplesWritten)
}

func TestDataWriter_FanOutPerReaderRetention(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())
	r1 := dds.NewDataReader(topic, dds.KeepLastQoS(1))
	r2 := dds.NewDataReader(topic, dds.KeepLastQoS(5))
	require.True(t, w.RegisterReader(r1))
	require.True(t, w.RegisterReader(r2))

	require.NoError(t, w.Write(msg("X")))
	require.NoError(t, w.Write(msg("Y")))

	assert.Equal(t, []string{"Y"}, takeAll(t, r1))
	assert.Equal(t, []string{"X", "Y"}, takeAll(t, r2))
	assert.Equal(t, int64(4), w.Stats().Deliveries)
}

func TestDataWriter_SampleInfoStamping(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w, r := pair(t, dds.KeepAllQoS(), dds.WithClock(func() time.Time { return now }))

	for range 3 {
		require.NoError(t, w.Write(msg("x")))
	}

	for i := range 3 {
		_, got, ok := r.Take()
		require.True(t, ok)
		assert.True(t, got.ValidData)
		assert.Equal(t, int64(i), got.SequenceHandle)
		assert.Equal(t, now, got.SourceTimestamp)
		assert.Equal(t, w.GUID(), got.PublicationGUID)
	}
	assert.Equal(t, now, w.Stats().LastWriteAt)
}

func TestDataWriter_SequenceAdvancesWithoutReaders(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())
	r := dds.NewDataReader(topic, dds.KeepAllQoS())

	require.NoError(t, w.Write(msg("unseen")))
	require.NoError(t, w.Write(msg("unseen")))
	w.RegisterReader(r)
	require.NoError(t, w.Write(msg("seen")))

	_, got, ok := r.Take()
	require.True(t, ok)
	assert.Equal(t, int64(2), got.SequenceHandle)
}

func TestDataWriter_SameInfoForEveryReader(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())
	readers := make([]*dds.DataReader, 3)
	for i := range readers {
		readers[i] = dds.NewDataReader(topic, dds.KeepAllQoS())
		w.RegisterReader(readers[i])
	}

	require.NoError(t, w.Write(msg("x")))

	_, first, ok := readers[0].Take()
	require.True(t, ok)
	for _, r := range readers[1:] {
		_, got, ok := r.Take()
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestDataWriter_ReadersReceiveIndependentCopies(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())
	r1 := dds.NewDataReader(topic, dds.KeepAllQoS())
	r2 := dds.NewDataReader(topic, dds.KeepAllQoS())
	w.RegisterReader(r1)
	w.RegisterReader(r2)

	orig := &message{Text: "orig", Tags: []string{"a"}}
	require.NoError(t, w.Write(orig))

	orig.Text = "changed after write"
	orig.Tags[0] = "changed"

	m1, _, ok := dds.TakeAs[*message](r1)
	require.True(t, ok)
	m1.Tags[0] = "mutated by r1"

	m2, _, ok := dds.TakeAs[*message](r2)
	require.True(t, ok)

	assert.Equal(t, "orig", m1.Text)
	assert.Equal(t, "orig", m2.Text)
	assert.Equal(t, []string{"a"}, m2.Tags)
	assert.NotSame(t, m1, m2)
}

func TestDataWriter_RegisterReaderIsIdempotent(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())
	r := dds.NewDataReader(topic, dds.KeepAllQoS())

	assert.True(t, w.RegisterReader(r))
	assert.False(t, w.RegisterReader(r))
	assert.False(t, w.RegisterReader(nil))
	assert.Equal(t, 1, w.MatchedReaders())

	require.NoError(t, w.Write(msg("once")))
	assert.Equal(t, []string{"once"}, takeAll(t, r))
}

func TestDataWriter_UnregisterReader(t *testing.T) {
	t.Parallel()

	w, r := pair(t, dds.KeepAllQoS())

	require.NoError(t, w.Write(msg("before")))
	assert.True(t, w.UnregisterReader(r))
	assert.False(t, w.UnregisterReader(r))
	require.NoError(t, w.Write(msg("after")))

	assert.Equal(t, []string{"before"}, takeAll(t, r))
	assert.Equal(t, 0, w.MatchedReaders())
}

func TestDataWriter_RegistrationOrderDelivery(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.DefaultQoS())

	var order []int
	for i := range 3 {
		r := dds.NewDataReader(topic, dds.KeepAllQoS(),
			dds.WithListener(dds.ListenerFunc(func() { order = append(order, i) })))
		w.RegisterReader(r)
	}

	require.NoError(t, w.Write(msg("x")))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestDataWriter_QoSIsRecordedOnly(t *testing.T) {
	t.Parallel()

	topic := dds.NewTopic("T", "message", dds.DefaultQoS())
	w := dds.NewDataWriter(topic, dds.KeepLastQoS(1))
	r := dds.NewDataReader(topic, dds.KeepAllQoS())
	w.RegisterReader(r)

	for range 5 {
		require.NoError(t, w.Write(msg("x")))
	}

	assert.Equal(t, dds.KeepLastQoS(1), w.QoS())
	assert.Equal(t, 5, r.Count())
	assert.Same(t, topic, w.Topic())
}
