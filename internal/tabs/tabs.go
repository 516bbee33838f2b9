// Package tabs defines the contract between the humor engine and the host
// browser layer. The real collaborator lives in the extension glue; this
// package carries only the data it supplies and a synthetic stand-in.
package tabs

import "time"

// EventKind identifies a tab or group lifecycle change that can trigger a
// humor delivery attempt.
type EventKind string

const (
	// EventTabOpened indicates a tab was opened.
	EventTabOpened EventKind = "tab_opened"
	// EventTabClosed indicates a tab was closed by the user.
	EventTabClosed EventKind = "tab_closed"
	// EventChanceClose indicates a tab was closed by the chance-close feature.
	EventChanceClose EventKind = "chance_close"
	// EventGroupCreated indicates a tab group was created.
	EventGroupCreated EventKind = "group_created"
	// EventGroupRemoved indicates a tab group was removed.
	EventGroupRemoved EventKind = "group_removed"
	// EventMilestone indicates a tab-count milestone was crossed.
	EventMilestone EventKind = "milestone"
	// EventAmbient is a scheduled trigger not tied to any tab change.
	EventAmbient EventKind = "ambient"
)

// Category returns the generic quip category used when no easter egg
// matches a trigger of this kind.
func (k EventKind) Category() string {
	switch k {
	case EventGroupCreated, EventGroupRemoved:
		return "group"
	case EventTabOpened:
		return "tab_open"
	case EventTabClosed:
		return "tab_close"
	case EventChanceClose:
		return "chance_close"
	case EventMilestone:
		return "milestone"
	default:
		return "ambient"
	}
}

// Tab describes the active tab at trigger time.
type Tab struct {
	URL    string
	Title  string
	Domain string
}

// Event is a trigger originated by the host layer.
type Event struct {
	Kind      EventKind
	Tab       *Tab   // tab the event concerns, if any
	GroupName string // set for group events
	At        time.Time
}

// Provider supplies current browsing state on demand. Implemented by the
// host browser glue, and by SyntheticProvider for tests and demos.
type Provider interface {
	TabCount() int
	GroupCount() int
	ActiveTab() *Tab // nil when no tab is active
}
