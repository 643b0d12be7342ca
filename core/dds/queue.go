package dds

// queueEntry is one delivered sample with its metadata.
type queueEntry struct {
	sample Sample
	info   SampleInfo
}

// ReaderQueue is a FIFO of delivered samples that enforces a reader's
// history policy. It does no locking; DataReader guards it with its own mutex.
type ReaderQueue struct {
	entries []queueEntry
	head    int
	history HistoryKind
	depth   int
}

// NewReaderQueue creates an empty queue for the given policy.
// A keep-last depth below one is treated as one.
func NewReaderQueue(qos QoS) *ReaderQueue {
	qos = qos.normalized()

	capacity := 0
	if qos.History == KeepLast {
		capacity = qos.Depth
	}

	return &ReaderQueue{
		entries: make([]queueEntry, 0, capacity),
		history: qos.History,
		depth:   qos.Depth,
	}
}

// Push appends to the back of the queue. Under keep-last, entries are evicted
// from the front until the length equals the depth; the number of evicted
// entries is returned. Eviction is policy, not failure.
func (q *ReaderQueue) Push(s Sample, info SampleInfo) int {
	q.entries = append(q.entries, queueEntry{sample: s, info: info})

	evicted := 0
	if q.history == KeepLast {
		for q.Len() > q.depth {
			q.dropFront()
			evicted++
		}
	}

	q.compact()
	return evicted
}

// PopFront removes and returns the oldest entry.
func (q *ReaderQueue) PopFront() (Sample, SampleInfo, bool) {
	if q.Len() == 0 {
		return nil, SampleInfo{}, false
	}

	e := q.entries[q.head]
	q.dropFront()
	q.compact()
	return e.sample, e.info, true
}

// PeekFront returns the oldest entry without removing it.
func (q *ReaderQueue) PeekFront() (Sample, SampleInfo, bool) {
	if q.Len() == 0 {
		return nil, SampleInfo{}, false
	}

	e := q.entries[q.head]
	return e.sample, e.info, true
}

// Len returns the current occupancy.
func (q *ReaderQueue) Len() int {
	return len(q.entries) - q.head
}

// Clear drops every entry and returns how many were dropped.
func (q *ReaderQueue) Clear() int {
	n := q.Len()
	clear(q.entries)
	q.entries = q.entries[:0]
	q.head = 0
	return n
}

func (q *ReaderQueue) dropFront() {
	q.entries[q.head] = queueEntry{}
	q.head++
}

// compact reclaims the consumed prefix once it dominates the backing array,
// keeping pops O(1) amortized without unbounded growth.
func (q *ReaderQueue) compact() {
	if q.head == 0 {
		return
	}
	if q.head == len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
		return
	}
	if q.head >= len(q.entries)/2 {
		n := copy(q.entries, q.entries[q.head:])
		clear(q.entries[n:])
		q.entries = q.entries[:n]
		q.head = 0
	}
}
