package quips

import "sync"

// DefaultHistorySize is the recent-delivery window.
const DefaultHistorySize = 10

// History is a bounded FIFO of recently delivered quip texts with a set
// mirror for O(1) membership checks. The slice and set are kept in
// lock-step: every insert and eviction touches both under one lock.
type History struct {
	mu       sync.Mutex
	ordered  []string // oldest first
	seen     map[string]struct{}
	capacity int
}

// NewHistory creates a history with the given capacity. Non-positive
// capacities fall back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		seen:     make(map[string]struct{}, capacity),
		capacity: capacity,
	}
}

// Contains reports whether text was delivered within the window.
func (h *History) Contains(text string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.seen[text]
	return ok
}

// Record marks text as just delivered, evicting the oldest entry past
// capacity. Re-recording an existing text moves it to the newest slot
// instead of duplicating it.
func (h *History) Record(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.seen[text]; ok {
		for i, t := range h.ordered {
			if t == text {
				h.ordered = append(h.ordered[:i], h.ordered[i+1:]...)
				break
			}
		}
	} else {
		h.seen[text] = struct{}{}
	}
	h.ordered = append(h.ordered, text)

	for len(h.ordered) > h.capacity {
		oldest := h.ordered[0]
		h.ordered = h.ordered[1:]
		delete(h.seen, oldest)
	}
}

// Items returns the window contents, oldest first.
func (h *History) Items() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.ordered))
	copy(out, h.ordered)
	return out
}

// Len returns the number of texts in the window.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ordered)
}
