// Package content loads and serves the authored humor catalog: easter-egg
// rules and generic quips.
package content

import (
	"errors"
	"fmt"

	"github.com/Phazzie/tabbymctabface/internal/quips"
	"github.com/Phazzie/tabbymctabface/internal/rules"
)

// ErrNotInitialized is returned when a store is queried before it holds a
// catalog.
var ErrNotInitialized = errors.New("content store not initialized")

// ShapeError reports a catalog that could be read but not understood.
type ShapeError struct {
	Source string
	Err    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bad catalog shape in %s: %v", e.Source, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Store serves the rule catalog at startup and candidate quip pools
// per delivery. Implementations return typed errors, never panic.
type Store interface {
	// EasterEggs returns the full rule catalog for registry loading.
	EasterEggs() ([]*rules.Rule, error)
	// EasterEggPool returns the quip texts for a rule type at or below
	// the given intensity tier. An empty pool is not an error.
	EasterEggPool(ruleType string, tier quips.Level) ([]string, error)
	// GenericPool returns the generic quip texts for a trigger category
	// at or below the given intensity tier.
	GenericPool(category string, tier quips.Level) ([]string, error)
}
