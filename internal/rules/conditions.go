package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Phazzie/tabbymctabface/internal/snapshot"
)

// ConditionError reports a malformed predicate discovered during
// evaluation. A rule that silently never fires is a correctness hazard, so
// this aborts evaluation instead of degrading to no-match.
type ConditionError struct {
	RuleID string
	Kind   ConditionKind
	Err    error
}

func (e *ConditionError) Error() string {
	return fmt.Sprintf("rule %s: %s condition failed: %v", e.RuleID, e.Kind, e.Err)
}

func (e *ConditionError) Unwrap() error { return e.Err }

// matchNumeric checks an integer against a numeric condition. A value of 0
// never satisfies multiple_of: "zero tabs" is not a milestone.
func matchNumeric(c *NumericCondition, v int) bool {
	if c.Exact != nil && v != *c.Exact {
		return false
	}
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	if c.MultipleOf != nil {
		n := *c.MultipleOf
		if n <= 0 || v == 0 || v%n != 0 {
			return false
		}
	}
	return true
}

// matchHour checks an hour against a range, wrapping past midnight when
// Start > End. Both endpoints are inclusive.
func matchHour(h *HourRange, hour int) bool {
	if h.Start <= h.End {
		return hour >= h.Start && hour <= h.End
	}
	return hour >= h.Start || hour <= h.End
}

// evaluate checks every present predicate against the snapshot. It returns
// the kinds that actually constrained the match. Domain and title
// predicates are satisfied when no active tab exists: conditions only
// constrain when applicable data is present.
func (r *Rule) evaluate(snap snapshot.Snapshot) (bool, []ConditionKind, error) {
	var matched []ConditionKind

	if c := r.Conditions.TabCount; c != nil {
		if !matchNumeric(c, snap.TabCount) {
			return false, nil, nil
		}
		matched = append(matched, KindTabCount)
	}

	if c := r.Conditions.GroupCount; c != nil {
		if !matchNumeric(c, snap.GroupCount) {
			return false, nil, nil
		}
		matched = append(matched, KindGroupCount)
	}

	if h := r.Conditions.Hours; h != nil {
		if !matchHour(h, snap.Hour) {
			return false, nil, nil
		}
		matched = append(matched, KindHours)
	}

	if p := r.Conditions.DomainPattern; p != "" && snap.ActiveTab != nil {
		if r.domainRe == nil {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return false, nil, &ConditionError{RuleID: r.ID, Kind: KindDomain, Err: err}
			}
			r.domainRe = re
		}
		if !r.domainRe.MatchString(snap.ActiveTab.Domain) {
			return false, nil, nil
		}
		matched = append(matched, KindDomain)
	}

	if s := r.Conditions.TitleContains; s != "" && snap.ActiveTab != nil {
		if !strings.Contains(strings.ToLower(snap.ActiveTab.Title), strings.ToLower(s)) {
			return false, nil, nil
		}
		matched = append(matched, KindTitle)
	}

	return true, matched, nil
}
