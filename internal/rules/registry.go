package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Phazzie/tabbymctabface/internal/logging"
)

var (
	// ErrNoRulesRegistered is returned when a load yields zero rules.
	ErrNoRulesRegistered = errors.New("no rules registered")
	// ErrDuplicateRuleID is returned when a rule id is already registered.
	ErrDuplicateRuleID = errors.New("duplicate rule id")
	// ErrInvalidConditions is returned for a rule with no predicates.
	// An always-matching rule would shadow the generic catalog.
	ErrInvalidConditions = errors.New("rule has no conditions")
)

// Registry holds the easter-egg rule set, priority-sorted with an id index
// for duplicate detection. Loaded once at startup, immutable afterward in
// normal operation.
type Registry struct {
	mu      sync.RWMutex
	ordered []*Rule
	byID    map[string]*Rule
	nextSeq int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Rule)}
}

// Register validates and adds one rule, assigning its priority from its
// tier. Ties between equal priorities resolve to earliest registration.
func (reg *Registry) Register(r *Rule) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidConditions)
	}
	if r.Conditions.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalidConditions, r.ID)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.byID[r.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRuleID, r.ID)
	}

	r.priority = r.Tier.Priority()
	r.seq = reg.nextSeq
	reg.nextSeq++

	reg.byID[r.ID] = r
	reg.ordered = append(reg.ordered, r)
	sort.SliceStable(reg.ordered, func(i, j int) bool {
		if reg.ordered[i].priority != reg.ordered[j].priority {
			return reg.ordered[i].priority > reg.ordered[j].priority
		}
		return reg.ordered[i].seq < reg.ordered[j].seq
	})

	return nil
}

// Load registers rules in order and fails with ErrNoRulesRegistered when
// given none. Individual registration failures abort the load: malformed
// catalogs are authoring bugs worth surfacing at startup.
func (reg *Registry) Load(rs []*Rule) error {
	if len(rs) == 0 {
		return ErrNoRulesRegistered
	}
	for _, r := range rs {
		if err := reg.Register(r); err != nil {
			logging.Warn("rules", "rejected rule %s: %v", r.ID, err)
			return err
		}
	}
	logging.Info("rules", "loaded %d easter eggs", len(rs))
	return nil
}

// All returns the rules in evaluation order (descending priority,
// registration order within a tier).
func (reg *Registry) All() []*Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Rule, len(reg.ordered))
	copy(out, reg.ordered)
	return out
}

// Get returns a rule by id, or nil.
func (reg *Registry) Get(id string) *Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.byID[id]
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.ordered)
}

// Clear removes all rules. Intended for tests and reloads.
func (reg *Registry) Clear() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.ordered = nil
	reg.byID = make(map[string]*Rule)
	reg.nextSeq = 0
}
