// Package snapshot builds point-in-time views of the browsing environment
// for rule evaluation.
package snapshot

import (
	"sync"
	"time"

	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

// MaxRecentEvents bounds the event history carried on a snapshot.
const MaxRecentEvents = 10

// Snapshot is an immutable summary of browsing state at trigger time.
// Built fresh for every trigger and discarded after one evaluation pass.
type Snapshot struct {
	TabCount     int
	ActiveTab    *tabs.Tab
	Hour         int              // 0-23
	RecentEvents []tabs.EventKind // most recent first
	GroupCount   int
	At           time.Time
}

// Builder assembles snapshots from Provider state plus the event history it
// has observed. Building has no I/O beyond reading the provider.
type Builder struct {
	provider tabs.Provider
	now      func() time.Time

	mu     sync.Mutex
	recent []tabs.EventKind // most recent first
}

// NewBuilder creates a builder. now may be nil, defaulting to time.Now.
func NewBuilder(provider tabs.Provider, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{provider: provider, now: now}
}

// Build records the triggering event and returns a fresh snapshot. The
// returned snapshot owns its RecentEvents slice; later builds never mutate it.
func (b *Builder) Build(ev tabs.Event) Snapshot {
	b.mu.Lock()
	b.recent = append([]tabs.EventKind{ev.Kind}, b.recent...)
	if len(b.recent) > MaxRecentEvents {
		b.recent = b.recent[:MaxRecentEvents]
	}
	recent := make([]tabs.EventKind, len(b.recent))
	copy(recent, b.recent)
	b.mu.Unlock()

	now := b.now()
	return Snapshot{
		TabCount:     b.provider.TabCount(),
		ActiveTab:    b.provider.ActiveTab(),
		Hour:         now.Hour(),
		RecentEvents: recent,
		GroupCount:   b.provider.GroupCount(),
		At:           now,
	}
}
