package quips

import (
	"math/rand"
	"sync"
	"time"
)

// Selector picks one quip from a candidate pool while avoiding the recent
// delivery window. It never records deliveries itself; the orchestrator
// records only after a confirmed sink success.
type Selector struct {
	history *History

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSelector creates a selector. src may be nil, defaulting to a
// time-seeded source; tests pass a fixed seed.
func NewSelector(history *History, src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{history: history, rnd: rand.New(src)}
}

// Pick chooses uniformly at random from the pool minus recently delivered
// texts. When every candidate was recently shown it falls back to the
// unfiltered pool: repetition beats silence. Returns false only for an
// empty pool.
func (s *Selector) Pick(pool []string) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}

	fresh := make([]string, 0, len(pool))
	for _, text := range pool {
		if !s.history.Contains(text) {
			fresh = append(fresh, text)
		}
	}
	candidates := fresh
	if len(candidates) == 0 {
		candidates = pool
	}

	s.mu.Lock()
	i := s.rnd.Intn(len(candidates))
	s.mu.Unlock()
	return candidates[i], true
}
