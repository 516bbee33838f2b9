package rules

import (
	"errors"
	"testing"
)

func ruleWithTabCount(id string, tier Tier, n int) *Rule {
	return &Rule{
		ID:         id,
		Type:       "test",
		Tier:       tier,
		Conditions: Conditions{TabCount: &NumericCondition{Exact: intPtr(n)}},
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(ruleWithTabCount("dup", TierCommon, 1)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	err := reg.Register(ruleWithTabCount("dup", TierRare, 2))
	if !errors.Is(err, ErrDuplicateRuleID) {
		t.Errorf("expected ErrDuplicateRuleID, got %v", err)
	}
}

func TestRegisterRejectsEmptyConditions(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(&Rule{ID: "empty", Tier: TierCommon})
	if !errors.Is(err, ErrInvalidConditions) {
		t.Errorf("expected ErrInvalidConditions, got %v", err)
	}
	if reg.Len() != 0 {
		t.Error("rejected rule must not be registered")
	}
}

func TestPriorityOrderWithTies(t *testing.T) {
	reg := NewRegistry()
	for _, r := range []*Rule{
		ruleWithTabCount("common-first", TierCommon, 1),
		ruleWithTabCount("rare", TierRare, 1),
		ruleWithTabCount("common-second", TierCommon, 1),
		ruleWithTabCount("legendary", TierLegendary, 1),
	} {
		if err := reg.Register(r); err != nil {
			t.Fatalf("register %s failed: %v", r.ID, err)
		}
	}

	var got []string
	for _, r := range reg.All() {
		got = append(got, r.ID)
	}
	want := []string{"legendary", "rare", "common-first", "common-second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("evaluation order: got %v, want %v", got, want)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Load(nil); !errors.Is(err, ErrNoRulesRegistered) {
		t.Errorf("expected ErrNoRulesRegistered, got %v", err)
	}
}

func TestClear(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(ruleWithTabCount("r", TierCommon, 1)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	reg.Clear()
	if reg.Len() != 0 {
		t.Error("expected empty registry after Clear")
	}
	if err := reg.Register(ruleWithTabCount("r", TierCommon, 1)); err != nil {
		t.Errorf("re-register after Clear failed: %v", err)
	}
}
