package guild

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestConfirmationTwoStep(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("first request should need confirmation")
	}

	clock.Advance(30 * time.Second)
	if !tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("second request within the window should proceed")
	}

	// The entry was consumed; the next request starts a fresh cycle.
	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("request after consumption should need confirmation again")
	}
}

func TestConfirmationExpiry(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("first request should need confirmation")
	}

	clock.Advance(61 * time.Second)
	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("request after the window should start a fresh cycle, not proceed")
	}

	clock.Advance(59 * time.Second)
	if !tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("repeat within the fresh window should proceed")
	}
}

func TestConfirmationExactWindowBoundary(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	tracker.RequestOrConsume("guild1", 42)
	clock.Advance(60 * time.Second)
	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("an entry aged exactly one window is expired")
	}
}

func TestConfirmationConcurrentRepeatsCollapseToOneProceed(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	if tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("first request should need confirmation")
	}

	// Two racing repeats of the same request: exactly one consumes the
	// pending entry, the other starts a fresh cycle.
	results := make([]bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tracker.RequestOrConsume("guild1", 42)
		}(i)
	}
	wg.Wait()

	if results[0] == results[1] {
		t.Fatalf("expected exactly one Proceed, got %v and %v", results[0], results[1])
	}
}

func TestConfirmationKeyedPerGuildAndUser(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	tracker.RequestOrConsume("guild1", 42)

	if tracker.RequestOrConsume("guild2", 42) {
		t.Fatal("a pending entry in one guild must not confirm another guild")
	}
	if tracker.RequestOrConsume("guild1", 43) {
		t.Fatal("a pending entry for one user must not confirm another user")
	}
	if !tracker.RequestOrConsume("guild1", 42) {
		t.Fatal("the original pair should still be confirmable")
	}
}

func TestSweepDropsOnlyExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	tracker := NewConfirmationTracker(60*time.Second, clock.Now)

	tracker.RequestOrConsume("guild1", 1)
	clock.Advance(61 * time.Second)
	tracker.RequestOrConsume("guild1", 2)

	tracker.Sweep()

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if _, ok := tracker.pending[confirmKey("guild1", 1)]; ok {
		t.Fatal("expired entry should have been swept")
	}
	if _, ok := tracker.pending[confirmKey("guild1", 2)]; !ok {
		t.Fatal("fresh entry should survive the sweep")
	}
}
