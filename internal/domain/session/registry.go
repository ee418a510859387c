package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
)

// Registry tracks every currently-attached session so the Upstream Reader
// can broadcast an event packet (flags byte 0x00) to all of them.
// Registration churns independently of the single-goroutine Upstream
// Reader, so unlike CorrespondenceTable this does need a mutex.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Register adds s to the registry.
func (r *Registry) Register(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Unregister removes s from the registry. Called from the session's own
// teardown path once its tasks have exited.
func (r *Registry) Unregister(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.ID)
}

// Len reports the number of attached sessions, for the ClientsConnected
// gauge.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the ReplySink of every currently registered session.
// Taking a snapshot under the lock and then delivering outside of it keeps
// a slow or stalled client's SendOrDone from blocking registration
// elsewhere.
func (r *Registry) Snapshot() []proxy.ReplySink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks := make([]proxy.ReplySink, 0, len(r.sessions))
	for _, s := range r.sessions {
		sinks = append(sinks, s.Sink())
	}
	return sinks
}
