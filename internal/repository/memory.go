package repository

import (
	"context"
	"iter"
	"sync"
	"time"
)

// MemoryCollection keeps records in a map guarded by a RWMutex. Insertion
// order is tracked separately; records are never removed, only deactivated.
type MemoryCollection[T any, P Entity[T]] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

// NewMemoryCollection creates an empty MemoryCollection.
func NewMemoryCollection[T any, P Entity[T]]() *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{items: make(map[string]T)}
}

func (c *MemoryCollection[T, P]) Insert(_ context.Context, entity T) error {
	id := P(&entity).Meta().ID

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; exists {
		return ErrDuplicateIdentifier
	}
	c.items[id] = entity
	c.order = append(c.order, id)
	return nil
}

func (c *MemoryCollection[T, P]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// List walks the insertion order one record at a time, so records appended
// while ranging are still visited.
func (c *MemoryCollection[T, P]) List(_ context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; ; i++ {
			c.mu.RLock()
			if i >= len(c.order) {
				c.mu.RUnlock()
				return
			}
			item := c.items[c.order[i]]
			c.mu.RUnlock()

			if !yield(item, nil) {
				return
			}
		}
	}
}

func (c *MemoryCollection[T, P]) Deactivate(_ context.Context, id string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return ErrNotFound
	}
	meta := P(&item).Meta()
	meta.Active = false
	meta.UpdatedAt = at
	c.items[id] = item
	return nil
}

func (c *MemoryCollection[T, P]) Replace(_ context.Context, id string, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.items[id]
	if !ok {
		return ErrNotFound
	}
	prev := P(&current).Meta()
	next := P(&entity).Meta()
	next.ID = id
	next.CreatedAt = prev.CreatedAt
	next.Active = prev.Active
	c.items[id] = entity
	return nil
}
