// Package proxy holds the domain types shared by the per-client and
// singleton tasks: the wire-agnostic command/reply records and the
// correspondence table that links a JVM reply back to the client that is
// waiting on it.
package proxy

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/jvmdbg/jdwp-proxy/internal/queue"
	"github.com/jvmdbg/jdwp-proxy/pkg/jdwp"
)

// Reply is a frame travelling from the Upstream Reader to a client's own
// Client Writer task.
type Reply struct {
	Packet jdwp.Packet
}

// ReplySink is how a client session is known to the rest of the proxy: a
// queue to deliver replies on, and a done channel that closes when the
// session has torn down. Both fields are read-only views owned by the
// session itself (internal/domain/session); the correspondence table and
// Upstream Reader only ever hold a copy of this struct, never the session.
type ReplySink struct {
	Queue *queue.Queue[Reply]
	Done  <-chan struct{}
}

// Deliver attempts to hand r to the sink's queue, respecting backpressure
// while the session is alive and dropping silently once it is not: a full
// queue blocks the caller until the client drains it or the session ends,
// and a client that is gone never stalls the single Upstream Reader
// goroutine that every other client depends on.
func (s ReplySink) Deliver(r Reply) (delivered bool) {
	return s.Queue.SendOrDone(r, s.Done)
}

// IncomingCmd is a frame read from a client, still carrying the sink the
// eventual reply must be routed back to. Produced by a Client Reader,
// consumed by the Upstream Writer.
type IncomingCmd struct {
	Packet jdwp.Packet
	Sink   ReplySink
}

// OutstandingCmd records that proxy-id ProxyID, on the wire to the JVM,
// corresponds to client-assigned ClientID and must be routed to Sink once
// its reply arrives. Produced by the Upstream Writer strictly before the
// corresponding frame is written to the JVM, so the correspondence table
// always reflects a command before its reply can possibly arrive; consumed
// by the Upstream Reader, which is the sole owner of that table.
type OutstandingCmd struct {
	ClientID uint32
	ProxyID  uint32
	Sink     ReplySink

	// Span, if non-nil, is ended by the Upstream Reader when the matching
	// reply is removed from the correspondence table. Carrying it through
	// the same record that already flows from writer to reader avoids any
	// separate map keyed by proxy-id.
	Span trace.Span
}
