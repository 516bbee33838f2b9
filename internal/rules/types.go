// Package rules holds easter-egg definitions and the condition evaluation
// engine that matches them against browsing-context snapshots.
package rules

import "regexp"

// Tier is the coarse rarity tag authored on each rule. Priority is derived
// from it at registration time so authors never pick raw numbers.
type Tier string

const (
	TierCommon    Tier = "common"
	TierUncommon  Tier = "uncommon"
	TierRare      Tier = "rare"
	TierLegendary Tier = "legendary"
)

// Priority maps a tier to its fixed numeric priority (higher fires first).
// Unknown tiers sort below common so a typo never shadows real rules.
func (t Tier) Priority() int {
	switch t {
	case TierLegendary:
		return 40
	case TierRare:
		return 30
	case TierUncommon:
		return 20
	case TierCommon:
		return 10
	default:
		return 0
	}
}

// NumericCondition constrains an integer context field. Exactly one of the
// forms is normally set; all set forms must hold.
type NumericCondition struct {
	Exact      *int `yaml:"exact,omitempty"`
	Min        *int `yaml:"min,omitempty"`
	Max        *int `yaml:"max,omitempty"`
	MultipleOf *int `yaml:"multiple_of,omitempty"`
}

// HourRange constrains the hour of day, inclusive on both ends. When
// Start > End the range wraps past midnight: {22, 4} covers 22:00 through
// 04:59.
type HourRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Conditions is the AND-combined predicate set of a rule. Every field is
// optional; an absent predicate never constrains.
type Conditions struct {
	TabCount      *NumericCondition `yaml:"tab_count,omitempty"`
	GroupCount    *NumericCondition `yaml:"group_count,omitempty"`
	Hours         *HourRange        `yaml:"hours,omitempty"`
	DomainPattern string            `yaml:"domain_pattern,omitempty"` // case-insensitive regex over active tab domain
	TitleContains string            `yaml:"title_contains,omitempty"` // case-insensitive substring over active tab title
}

// Empty reports whether no predicate is present at all.
func (c Conditions) Empty() bool {
	return c.TabCount == nil && c.GroupCount == nil && c.Hours == nil &&
		c.DomainPattern == "" && c.TitleContains == ""
}

// Rule is one easter egg: a predicate-gated association between a
// situational context and a pool of situational quips.
type Rule struct {
	ID         string     `yaml:"id"`
	Type       string     `yaml:"type"` // category tag, keys the quip pool lookup
	Tier       Tier       `yaml:"tier"`
	Conditions Conditions `yaml:"conditions"`
	Quips      []string   `yaml:"quips,omitempty"` // authored pool, imported into the content store
	Level      string     `yaml:"level,omitempty"` // intensity tier of the pool, defaults to normal

	// Runtime state
	priority int
	seq      int // registration order, breaks priority ties
	domainRe *regexp.Regexp
}

// Priority returns the numeric priority assigned at registration.
func (r *Rule) Priority() int { return r.priority }

// ConditionKind names a predicate kind, used in match diagnostics and
// evaluation errors.
type ConditionKind string

const (
	KindTabCount   ConditionKind = "tabCount"
	KindGroupCount ConditionKind = "groupCount"
	KindHours      ConditionKind = "hours"
	KindDomain     ConditionKind = "domain"
	KindTitle      ConditionKind = "title"
)
