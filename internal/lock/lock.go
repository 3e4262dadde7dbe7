package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrLockTimeout is returned when a scope could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for write lock")

// Locker serializes writers that share a scope.
type Locker interface {
	// Acquire blocks until the scope is held or ctx is done. The returned
	// release func must be called exactly once.
	Acquire(ctx context.Context, scope string) (release func(), err error)
}

// MutexLocker is an in-process Locker with one slot per scope.
type MutexLocker struct {
	mu     sync.Mutex
	scopes map[string]chan struct{}
}

// NewMutexLocker creates a MutexLocker.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{scopes: make(map[string]chan struct{})}
}

func (l *MutexLocker) slot(scope string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.scopes[scope]
	if !ok {
		ch = make(chan struct{}, 1)
		l.scopes[scope] = ch
	}
	return ch
}

func (l *MutexLocker) Acquire(ctx context.Context, scope string) (func(), error) {
	ch := l.slot(scope)

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
