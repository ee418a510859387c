package queue

import (
	"context"
	"testing"
	"time"
)

func TestSendRecvRoundTrip(t *testing.T) {
	q := New[int](2)
	ctx := context.Background()

	if err := q.Send(ctx, 1); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := q.Send(ctx, 2); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, ok := q.TryRecv()
	if !ok || got != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", got, ok)
	}
	got, ok = q.Recv(ctx)
	if !ok || got != 2 {
		t.Fatalf("got (%v, %v), want (2, true)", got, ok)
	}
}

func TestTryRecvEmpty(t *testing.T) {
	q := New[int](1)
	if _, ok := q.TryRecv(); ok {
		t.Fatal("TryRecv on empty queue returned ok=true")
	}
}

func TestSendBlocksUntilContextCancelled(t *testing.T) {
	q := New[int](1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := q.Send(ctx, 1); err != nil {
		t.Fatalf("Send: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- q.Send(ctx, 2) }()

	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Send returned nil error after context cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Send did not observe context cancellation")
	}
}

func TestSendOrDoneDeliversWhenRoom(t *testing.T) {
	q := New[int](1)
	done := make(chan struct{})

	if ok := q.SendOrDone(5, done); !ok {
		t.Fatal("SendOrDone returned false with room available")
	}
	got, ok := q.TryRecv()
	if !ok || got != 5 {
		t.Fatalf("got (%v, %v), want (5, true)", got, ok)
	}
}

func TestSendOrDoneDropsWhenDone(t *testing.T) {
	q := New[int](1)
	done := make(chan struct{})
	close(done)

	// Fill the queue so the send would otherwise block.
	_ = q.SendOrDone(1, make(chan struct{}))

	if ok := q.SendOrDone(2, done); ok {
		t.Fatal("SendOrDone returned true after done was closed with a full queue")
	}
}

func TestLenAndCap(t *testing.T) {
	q := New[int](3)
	if q.Cap() != 3 {
		t.Fatalf("Cap() = %d, want 3", q.Cap())
	}
	_ = q.Send(context.Background(), 1)
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
}
