package snapshot

import (
	"testing"
	"time"

	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

func TestBuildCapturesProviderState(t *testing.T) {
	active := &tabs.Tab{URL: "https://github.com", Title: "GitHub", Domain: "github.com"}
	provider := tabs.NewSyntheticProvider(42, 3, active)
	now := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

	b := NewBuilder(provider, func() time.Time { return now })
	snap := b.Build(tabs.Event{Kind: tabs.EventTabOpened})

	if snap.TabCount != 42 || snap.GroupCount != 3 {
		t.Errorf("counts wrong: %+v", snap)
	}
	if snap.Hour != 14 {
		t.Errorf("expected hour 14, got %d", snap.Hour)
	}
	if snap.ActiveTab == nil || snap.ActiveTab.Domain != "github.com" {
		t.Errorf("active tab wrong: %+v", snap.ActiveTab)
	}
}

func TestBuildRecentEventsMostRecentFirst(t *testing.T) {
	provider := tabs.NewSyntheticProvider(1, 0, nil)
	b := NewBuilder(provider, nil)

	b.Build(tabs.Event{Kind: tabs.EventTabOpened})
	b.Build(tabs.Event{Kind: tabs.EventGroupCreated})
	snap := b.Build(tabs.Event{Kind: tabs.EventTabClosed})

	want := []tabs.EventKind{tabs.EventTabClosed, tabs.EventGroupCreated, tabs.EventTabOpened}
	if len(snap.RecentEvents) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), snap.RecentEvents)
	}
	for i := range want {
		if snap.RecentEvents[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, snap.RecentEvents[i], want[i])
		}
	}
}

func TestBuildRecentEventsBounded(t *testing.T) {
	provider := tabs.NewSyntheticProvider(1, 0, nil)
	b := NewBuilder(provider, nil)

	var snap Snapshot
	for i := 0; i < MaxRecentEvents+5; i++ {
		snap = b.Build(tabs.Event{Kind: tabs.EventTabOpened})
	}
	if len(snap.RecentEvents) != MaxRecentEvents {
		t.Errorf("expected %d events, got %d", MaxRecentEvents, len(snap.RecentEvents))
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	provider := tabs.NewSyntheticProvider(1, 0, nil)
	b := NewBuilder(provider, nil)

	first := b.Build(tabs.Event{Kind: tabs.EventTabOpened})
	firstLen := len(first.RecentEvents)
	b.Build(tabs.Event{Kind: tabs.EventTabClosed})

	if len(first.RecentEvents) != firstLen || first.RecentEvents[0] != tabs.EventTabOpened {
		t.Error("earlier snapshot mutated by later build")
	}
}
