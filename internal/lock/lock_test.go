package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMutexLocker_Serializes(t *testing.T) {
	l := NewMutexLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "schedule")
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen)
	}
}

func TestMutexLocker_ContextCancel(t *testing.T) {
	l := NewMutexLocker()
	release, err := l.Acquire(context.Background(), "schedule")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := l.Acquire(ctx, "schedule"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	// Other scopes are independent.
	other, err := l.Acquire(context.Background(), "other")
	if err != nil {
		t.Fatalf("Acquire other scope: %v", err)
	}
	other()
}

func TestMutexLocker_DoubleReleaseIsSafe(t *testing.T) {
	l := NewMutexLocker()
	release, _ := l.Acquire(context.Background(), "s")
	release()
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	again, err := l.Acquire(ctx, "s")
	if err != nil {
		t.Fatalf("scope should be free after release: %v", err)
	}
	again()
}
