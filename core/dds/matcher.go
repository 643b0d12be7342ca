package dds

// Match associates w with r when they share a topic name and reports whether
// the association exists afterwards. Topic-name equality is the only
// criterion: type names and QoS compatibility are not checked. Matching an
// already associated pair is harmless because registration is idempotent.
// A deleted writer or reader never matches.
//
// Match is never invoked automatically; a registry calls it once both the
// writer and the reader exist.
func Match(w *DataWriter, r *DataReader) bool {
	if w == nil || r == nil {
		return false
	}
	if w.Topic().Name() != r.Topic().Name() {
		return false
	}

	_, ok := w.attach(r)
	return ok
}
