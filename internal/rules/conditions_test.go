package rules

import (
	"errors"
	"testing"

	"github.com/Phazzie/tabbymctabface/internal/snapshot"
	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

func intPtr(n int) *int { return &n }

func TestNumericExact(t *testing.T) {
	c := &NumericCondition{Exact: intPtr(42)}
	for _, tc := range []struct {
		v    int
		want bool
	}{
		{41, false},
		{42, true},
		{43, false},
	} {
		if got := matchNumeric(c, tc.v); got != tc.want {
			t.Errorf("exact 42 vs %d: got %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestNumericRange(t *testing.T) {
	c := &NumericCondition{Min: intPtr(10), Max: intPtr(20)}
	for _, tc := range []struct {
		v    int
		want bool
	}{
		{9, false},
		{10, true},
		{15, true},
		{20, true},
		{21, false},
	} {
		if got := matchNumeric(c, tc.v); got != tc.want {
			t.Errorf("range [10,20] vs %d: got %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestNumericMultipleOf(t *testing.T) {
	c := &NumericCondition{MultipleOf: intPtr(25)}
	for _, tc := range []struct {
		v    int
		want bool
	}{
		{0, false}, // zero is never a milestone
		{25, true},
		{50, true},
		{26, false},
	} {
		if got := matchNumeric(c, tc.v); got != tc.want {
			t.Errorf("multiple_of 25 vs %d: got %v, want %v", tc.v, got, tc.want)
		}
	}

	// A non-positive divisor never matches
	if matchNumeric(&NumericCondition{MultipleOf: intPtr(0)}, 10) {
		t.Error("multiple_of 0 should never match")
	}
}

func TestHourRangeWraparound(t *testing.T) {
	wrapped := &HourRange{Start: 22, End: 4}
	for hour := 0; hour < 24; hour++ {
		want := hour >= 22 || hour <= 4
		if got := matchHour(wrapped, hour); got != want {
			t.Errorf("range 22-4 at hour %d: got %v, want %v", hour, got, want)
		}
	}

	plain := &HourRange{Start: 9, End: 17}
	for hour := 0; hour < 24; hour++ {
		want := hour >= 9 && hour <= 17
		if got := matchHour(plain, hour); got != want {
			t.Errorf("range 9-17 at hour %d: got %v, want %v", hour, got, want)
		}
	}
}

func TestDomainConditionCaseInsensitive(t *testing.T) {
	r := &Rule{
		ID:         "gh",
		Conditions: Conditions{DomainPattern: "github\\.com"},
	}
	snap := snapshot.Snapshot{ActiveTab: &tabs.Tab{Domain: "GitHub.COM"}}

	ok, matched, err := r.evaluate(snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !ok {
		t.Error("expected case-insensitive domain match")
	}
	if len(matched) != 1 || matched[0] != KindDomain {
		t.Errorf("expected [domain] contribution, got %v", matched)
	}
}

func TestMalformedDomainPattern(t *testing.T) {
	r := &Rule{
		ID:         "broken",
		Conditions: Conditions{DomainPattern: "("},
	}
	snap := snapshot.Snapshot{ActiveTab: &tabs.Tab{Domain: "example.com"}}

	ok, _, err := r.evaluate(snap)
	if ok {
		t.Error("broken pattern must not match")
	}
	var condErr *ConditionError
	if !errors.As(err, &condErr) {
		t.Fatalf("expected *ConditionError, got %v", err)
	}
	if condErr.RuleID != "broken" || condErr.Kind != KindDomain {
		t.Errorf("unexpected error detail: %+v", condErr)
	}
}

func TestTitleSubstringCaseInsensitive(t *testing.T) {
	r := &Rule{
		ID:         "docs",
		Conditions: Conditions{TitleContains: "Documentation"},
	}
	snap := snapshot.Snapshot{ActiveTab: &tabs.Tab{Title: "go documentation - golang"}}

	ok, _, err := r.evaluate(snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !ok {
		t.Error("expected case-insensitive title match")
	}
}

func TestTabConditionsNoOpWithoutActiveTab(t *testing.T) {
	// Domain and title predicates only constrain when a tab is active.
	r := &Rule{
		ID: "mixed",
		Conditions: Conditions{
			TabCount:      &NumericCondition{Exact: intPtr(5)},
			DomainPattern: "github\\.com",
			TitleContains: "readme",
		},
	}
	snap := snapshot.Snapshot{TabCount: 5, ActiveTab: nil}

	ok, matched, err := r.evaluate(snap)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !ok {
		t.Error("expected match with no active tab")
	}
	if len(matched) != 1 || matched[0] != KindTabCount {
		t.Errorf("only tabCount should contribute, got %v", matched)
	}
}
