package rules

import (
	"github.com/Phazzie/tabbymctabface/internal/snapshot"
)

// Match is a successful evaluation: the winning rule plus the predicate
// kinds that actually constrained it, for diagnostics.
type Match struct {
	Rule              *Rule
	MatchedConditions []ConditionKind
}

// Evaluator matches snapshots against a registry. Deterministic and
// side-effect-free: the same (snapshot, registry) pair always yields the
// same result.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over the given registry.
func NewEvaluator(reg *Registry) *Evaluator {
	return &Evaluator{registry: reg}
}

// Evaluate returns the highest-priority fully-matching rule, or nil when
// nothing matches. No match is a normal outcome, not an error. A malformed
// predicate aborts with a *ConditionError rather than skipping the rule.
func (e *Evaluator) Evaluate(snap snapshot.Snapshot) (*Match, error) {
	for _, r := range e.registry.All() {
		ok, matched, err := r.evaluate(snap)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Match{Rule: r, MatchedConditions: matched}, nil
		}
	}
	return nil, nil
}
