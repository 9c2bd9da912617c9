package guild

import (
	"fmt"
	"sync"
	"time"
)

// DefaultConfirmWindow bounds how long a pending self-demotion stays
// confirmable.
const DefaultConfirmWindow = 60 * time.Second

// ConfirmationTracker holds the pending self-demotion requests, keyed by
// guild and user. Entries expire lazily: an entry older than the window is
// treated as absent on the next check.
type ConfirmationTracker struct {
	mu      sync.Mutex
	pending map[string]time.Time
	window  time.Duration
	now     func() time.Time
}

// NewConfirmationTracker builds a tracker with the given window. now is
// injected so tests can simulate expiry; pass time.Now in production.
func NewConfirmationTracker(window time.Duration, now func() time.Time) *ConfirmationTracker {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &ConfirmationTracker{
		pending: make(map[string]time.Time),
		window:  window,
		now:     now,
	}
}

// Window returns the configured confirmation window.
func (t *ConfirmationTracker) Window() time.Duration {
	return t.window
}

// RequestOrConsume advances the confirmation state machine for one
// guild/user pair. Without a fresh pending entry it records one and returns
// false (the caller must prompt and not apply the action). With a fresh
// entry it consumes it and returns true (the caller applies the action).
func (t *ConfirmationTracker) RequestOrConsume(guildID string, userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := confirmKey(guildID, userID)
	if requested, ok := t.pending[key]; ok {
		delete(t.pending, key)
		if t.now().Sub(requested) < t.window {
			return true
		}
		// Expired: fall through and start a fresh cycle.
	}

	t.pending[key] = t.now()
	return false
}

// Sweep drops expired entries. Correctness never depends on it; it only
// reclaims memory between lazy expiries.
func (t *ConfirmationTracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, requested := range t.pending {
		if t.now().Sub(requested) >= t.window {
			delete(t.pending, key)
		}
	}
}

func confirmKey(guildID string, userID int64) string {
	return fmt.Sprintf("%s:%d", guildID, userID)
}
