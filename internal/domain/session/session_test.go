package session

import (
	"context"
	"testing"

	"github.com/jvmdbg/jdwp-proxy/internal/domain/proxy"
)

func TestSessionSinkDeliversUntilClosed(t *testing.T) {
	s, _ := New(context.Background())
	sink := s.Sink()

	if !sink.Deliver(proxy.Reply{}) {
		t.Fatal("Deliver returned false on a fresh session")
	}

	// Fill the queue so a successful Deliver could only be explained by
	// capacity, not by the done branch racing the send branch in select.
	for s.Replies().Len() < s.Replies().Cap() {
		sink.Deliver(proxy.Reply{})
	}

	s.Close()
	<-s.Done()

	if sink.Deliver(proxy.Reply{}) {
		t.Fatal("Deliver returned true after the session was closed with a full queue")
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s, _ := New(context.Background())
	s.Close()
	s.Close()
}

func TestSessionClosedByParentContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s, _ := New(parent)
	cancel()
	<-s.Done()
}
