package events

import (
	"context"
	"sync"

	"github.com/stemsi/exstem-scheduler/internal/model"
)

const subscriberBuffer = 32

// Hub is an in-process Bus. Slow subscribers miss events instead of
// blocking publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[model.Term]map[chan Event]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[model.Term]map[chan Event]struct{})}
}

func (h *Hub) Publish(_ context.Context, e Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[e.Term] {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context, term model.Term) (<-chan Event, func(), error) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[term] == nil {
		h.subs[term] = make(map[chan Event]struct{})
	}
	h.subs[term][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[term], ch)
			if len(h.subs[term]) == 0 {
				delete(h.subs, term)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel, nil
}
