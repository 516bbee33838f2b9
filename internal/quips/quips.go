// Package quips holds the generic quip catalog types, the bounded
// recent-delivery history, and dedup-aware selection.
package quips

// Level is a quip intensity tier. The active tier is configuration; pools
// are filtered to quips at or below it.
type Level string

const (
	LevelMild   Level = "mild"
	LevelNormal Level = "normal"
	LevelSpicy  Level = "spicy"
)

// Rank orders levels for tier filtering. Unknown levels rank above spicy
// so they are never served by accident.
func (l Level) Rank() int {
	switch l {
	case LevelMild:
		return 1
	case LevelNormal:
		return 2
	case LevelSpicy:
		return 3
	default:
		return 4
	}
}

// Quip is one generic fallback text, tagged with the trigger categories it
// applies to.
type Quip struct {
	ID         string   `yaml:"id"`
	Text       string   `yaml:"text"`
	Categories []string `yaml:"categories"`
	Level      Level    `yaml:"level"`
}

// AppliesTo reports whether the quip is tagged with the given category.
func (q Quip) AppliesTo(category string) bool {
	for _, c := range q.Categories {
		if c == category {
			return true
		}
	}
	return false
}
