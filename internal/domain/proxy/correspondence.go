package proxy

import "go.opentelemetry.io/otel/trace"

// Entry is the recorded half of an OutstandingCmd once the Upstream Reader
// has drained it from the outstanding queue, stripped of the field that is
// no longer needed once inserted (ProxyID is the map key).
type Entry struct {
	ClientID uint32
	Sink     ReplySink
	Span     trace.Span
}

// CorrespondenceTable maps an in-flight proxy-id to the client session that
// is waiting on its reply. It is owned exclusively by the Upstream Reader
// goroutine: nothing else ever calls Insert or Remove, so no mutex
// guards the map; a single writer/reader needs none.
type CorrespondenceTable struct {
	entries map[uint32]Entry
}

// NewCorrespondenceTable returns an empty table.
func NewCorrespondenceTable() *CorrespondenceTable {
	return &CorrespondenceTable{entries: make(map[uint32]Entry)}
}

// Insert records cmd's proxy-id. It returns ErrDuplicateProxyID if that
// proxy-id is already outstanding, which would indicate the Upstream
// Writer's monotonic counter has been violated.
func (t *CorrespondenceTable) Insert(cmd OutstandingCmd) error {
	if _, exists := t.entries[cmd.ProxyID]; exists {
		return ErrDuplicateProxyID
	}
	t.entries[cmd.ProxyID] = Entry{ClientID: cmd.ClientID, Sink: cmd.Sink, Span: cmd.Span}
	return nil
}

// Remove deletes and returns the entry for proxyID, if present. The
// Upstream Reader calls this exactly once per reply frame, which is what
// keeps the table's size equal to the number of commands currently
// in-flight to the JVM.
func (t *CorrespondenceTable) Remove(proxyID uint32) (Entry, bool) {
	e, ok := t.entries[proxyID]
	if ok {
		delete(t.entries, proxyID)
	}
	return e, ok
}

// Len reports the number of in-flight commands, for the
// CorrespondenceTableSize gauge.
func (t *CorrespondenceTable) Len() int {
	return len(t.entries)
}
