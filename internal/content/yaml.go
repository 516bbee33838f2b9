package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Phazzie/tabbymctabface/internal/logging"
	"github.com/Phazzie/tabbymctabface/internal/quips"
	"github.com/Phazzie/tabbymctabface/internal/rules"
)

const (
	eggsFile  = "easter_eggs.yaml"
	quipsFile = "quips.yaml"
)

// Catalog is the authored humor content as it appears on disk.
type Catalog struct {
	EasterEggs []*rules.Rule `yaml:"easter_eggs"`
	Quips      []quips.Quip  `yaml:"quips"`
}

// LoadCatalog reads easter_eggs.yaml and quips.yaml from dir. A missing
// quips file leaves the generic catalog empty; a missing eggs file is an
// error since the registry refuses to load empty.
func LoadCatalog(dir string) (*Catalog, error) {
	var cat Catalog

	eggsPath := filepath.Join(dir, eggsFile)
	data, err := os.ReadFile(eggsPath)
	if err != nil {
		return nil, fmt.Errorf("read easter eggs: %w", err)
	}
	var eggs struct {
		EasterEggs []*rules.Rule `yaml:"easter_eggs"`
	}
	if err := yaml.Unmarshal(data, &eggs); err != nil {
		return nil, &ShapeError{Source: eggsPath, Err: err}
	}
	cat.EasterEggs = eggs.EasterEggs

	quipsPath := filepath.Join(dir, quipsFile)
	data, err = os.ReadFile(quipsPath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn("content", "no %s, generic catalog empty", quipsFile)
			return &cat, nil
		}
		return nil, fmt.Errorf("read quips: %w", err)
	}
	var qs struct {
		Quips []quips.Quip `yaml:"quips"`
	}
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, &ShapeError{Source: quipsPath, Err: err}
	}
	cat.Quips = qs.Quips

	logging.Info("content", "catalog: %d easter eggs, %d generic quips",
		len(cat.EasterEggs), len(cat.Quips))
	return &cat, nil
}

// eggLevel is the intensity tier of a rule's pool, defaulting to normal.
func eggLevel(r *rules.Rule) quips.Level {
	if r.Level == "" {
		return quips.LevelNormal
	}
	return quips.Level(r.Level)
}

// MemoryStore serves a catalog straight from memory. Used by tests and by
// hosts that skip the sqlite store.
type MemoryStore struct {
	catalog *Catalog
}

// NewMemoryStore wraps a catalog. A nil catalog yields ErrNotInitialized
// on every query.
func NewMemoryStore(cat *Catalog) *MemoryStore {
	return &MemoryStore{catalog: cat}
}

func (s *MemoryStore) EasterEggs() ([]*rules.Rule, error) {
	if s.catalog == nil {
		return nil, ErrNotInitialized
	}
	return s.catalog.EasterEggs, nil
}

func (s *MemoryStore) EasterEggPool(ruleType string, tier quips.Level) ([]string, error) {
	if s.catalog == nil {
		return nil, ErrNotInitialized
	}
	var pool []string
	for _, r := range s.catalog.EasterEggs {
		if r.Type != ruleType {
			continue
		}
		if eggLevel(r).Rank() > tier.Rank() {
			continue
		}
		pool = append(pool, r.Quips...)
	}
	return pool, nil
}

func (s *MemoryStore) GenericPool(category string, tier quips.Level) ([]string, error) {
	if s.catalog == nil {
		return nil, ErrNotInitialized
	}
	var pool []string
	for _, q := range s.catalog.Quips {
		if !q.AppliesTo(category) {
			continue
		}
		if q.Level.Rank() > tier.Rank() {
			continue
		}
		pool = append(pool, q.Text)
	}
	return pool, nil
}
