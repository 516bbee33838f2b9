package tabs

import (
	"sync"
	"time"
)

// SyntheticProvider is an in-memory Provider for synthetic mode and tests.
// State is mutated by the script driving it, never by the engine.
type SyntheticProvider struct {
	mu     sync.RWMutex
	tabs   int
	groups int
	active *Tab
}

// NewSyntheticProvider creates a provider with the given starting state.
func NewSyntheticProvider(tabCount, groupCount int, active *Tab) *SyntheticProvider {
	return &SyntheticProvider{tabs: tabCount, groups: groupCount, active: active}
}

func (p *SyntheticProvider) TabCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tabs
}

func (p *SyntheticProvider) GroupCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.groups
}

func (p *SyntheticProvider) ActiveTab() *Tab {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.active == nil {
		return nil
	}
	t := *p.active
	return &t
}

// Set replaces the provider state in one step.
func (p *SyntheticProvider) Set(tabCount, groupCount int, active *Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tabs = tabCount
	p.groups = groupCount
	p.active = active
}

// ScriptStep is one state change plus the event it emits.
type ScriptStep struct {
	TabCount   int
	GroupCount int
	Active     *Tab
	Event      Event
}

// RunScript applies each step to the provider and hands its event to emit,
// pausing between steps. Used by synthetic mode in cmd/tabby.
func (p *SyntheticProvider) RunScript(steps []ScriptStep, pause time.Duration, emit func(Event)) {
	for _, step := range steps {
		p.Set(step.TabCount, step.GroupCount, step.Active)
		ev := step.Event
		if ev.At.IsZero() {
			ev.At = time.Now()
		}
		emit(ev)
		if pause > 0 {
			time.Sleep(pause)
		}
	}
}
