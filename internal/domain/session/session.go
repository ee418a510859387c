// Package session models one connected debugger client: its identity, its
// reply queue, and the cancellation that tears both down together. Sessions
// are registered in a Registry so the Upstream Reader can broadcast event
// packets to every client currently attached.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
	"github.com/jvmdbg/jdwp-proxy/internal/queue"
)

// ReplyQueueCapacity bounds the per-client reply queue.
const ReplyQueueCapacity = 100

// Session represents one accepted client connection, from its handshake
// until its Client Reader or Client Writer task exits. Its ID is a
// proxy-internal handle for logging and registry lookup only; the
// client-id that appears in correspondence records is whatever value the
// debugger itself stamps into each command frame's id field, carried
// per-command through IncomingCmd/OutstandingCmd rather than held here.
type Session struct {
	ID uuid.UUID

	replies *queue.Queue[proxy.Reply]
	cancel  context.CancelFunc
	done    <-chan struct{}
}

// New creates a session bound to parent; cancelling the returned Session (or
// parent) closes Done, after which Deliver drops any reply the reply queue
// has no room for instead of blocking.
func New(parent context.Context) (*Session, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:      uuid.New(),
		replies: queue.New[proxy.Reply](ReplyQueueCapacity),
		cancel:  cancel,
		done:    ctx.Done(),
	}, ctx
}

// Sink returns the ReplySink other tasks use to deliver replies to this
// session, without exposing the Session itself.
func (s *Session) Sink() proxy.ReplySink {
	return proxy.ReplySink{Queue: s.replies, Done: s.done}
}

// Replies returns the queue the session's Client Writer task drains.
func (s *Session) Replies() *queue.Queue[proxy.Reply] {
	return s.replies
}

// Close cancels the session. Safe to call more than once.
func (s *Session) Close() {
	s.cancel()
}

// Done reports the channel that closes when the session has been torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
