package events

import (
	"context"
	"testing"
	"time"
)

func TestHub_DeliversPerTerm(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	h := NewHub()
	ch, cancel, err := h.Subscribe(ctx, "2025/2")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	_ = h.Publish(ctx, Event{Type: SectionCreated, Term: "2025/1", SectionID: "other"})
	_ = h.Publish(ctx, Event{Type: SectionCreated, Term: "2025/2", SectionID: "S1"})

	select {
	case e := <-ch:
		if e.SectionID != "S1" {
			t.Fatalf("received event of another term: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	h := NewHub()

	ch, cancel, _ := h.Subscribe(ctx, "2025/2")
	cancelCtx()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
	cancel()

	// Publishing after every subscriber left is a no-op.
	if err := h.Publish(context.Background(), Event{Term: "2025/2"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	_, cancel, _ := h.Subscribe(context.Background(), "2025/2")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = h.Publish(context.Background(), Event{Term: "2025/2"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a full subscriber")
	}
}
