package humor

import (
	"sync"
	"time"
)

// DefaultMinInterval is the cooldown between deliveries.
const DefaultMinInterval = 5 * time.Second

// Throttle enforces a minimum interval between deliveries. Admit is a pure
// check; the timestamp advances only via MarkDelivered, so a delivery that
// fails downstream never consumes the window.
type Throttle struct {
	mu          sync.Mutex
	last        time.Time
	minInterval time.Duration
}

// NewThrottle creates a gate. Non-positive intervals fall back to
// DefaultMinInterval.
func NewThrottle(minInterval time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Throttle{minInterval: minInterval}
}

// Admit reports whether a delivery at now is outside the cooldown window.
func (t *Throttle) Admit(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last.IsZero() || now.Sub(t.last) >= t.minInterval
}

// MarkDelivered records a successful delivery at now.
func (t *Throttle) MarkDelivered(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = now
}

// Remaining returns how long until the next delivery would be admitted.
func (t *Throttle) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.IsZero() {
		return 0
	}
	left := t.minInterval - now.Sub(t.last)
	if left < 0 {
		return 0
	}
	return left
}
