package content

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/Phazzie/tabbymctabface/internal/logging"
	"github.com/Phazzie/tabbymctabface/internal/quips"
	"github.com/Phazzie/tabbymctabface/internal/rules"
)

// SQLiteStore persists the imported catalog and serves per-delivery pool
// queries.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the content database under statePath.
func OpenSQLite(statePath string) (*SQLiteStore, error) {
	dbPath := filepath.Join(statePath, "content.db")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Debug("content", "opened %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS easter_eggs (
		id         TEXT PRIMARY KEY,
		type       TEXT NOT NULL,
		tier       TEXT NOT NULL,
		conditions TEXT NOT NULL,
		position   INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS egg_quips (
		rule_id    TEXT NOT NULL,
		rule_type  TEXT NOT NULL,
		level_rank INTEGER NOT NULL,
		position   INTEGER NOT NULL,
		text       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_egg_quips_type ON egg_quips(rule_type, level_rank);
	CREATE TABLE IF NOT EXISTS generic_quips (
		id         TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		level_rank INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS quip_categories (
		quip_id  TEXT NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (quip_id, category)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Import replaces the stored catalog with cat. Conditions are kept as the
// authored YAML so they round-trip without a second schema.
func (s *SQLiteStore) Import(cat *Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"easter_eggs", "egg_quips", "generic_quips", "quip_categories"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, r := range cat.EasterEggs {
		cond, err := yaml.Marshal(r.Conditions)
		if err != nil {
			return fmt.Errorf("failed to marshal conditions for %s: %w", r.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO easter_eggs (id, type, tier, conditions, position) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Type, string(r.Tier), string(cond), i,
		); err != nil {
			return fmt.Errorf("failed to insert rule %s: %w", r.ID, err)
		}
		rank := eggLevel(r).Rank()
		for j, text := range r.Quips {
			if _, err := tx.Exec(
				`INSERT INTO egg_quips (rule_id, rule_type, level_rank, position, text) VALUES (?, ?, ?, ?, ?)`,
				r.ID, r.Type, rank, j, text,
			); err != nil {
				return fmt.Errorf("failed to insert egg quip for %s: %w", r.ID, err)
			}
		}
	}

	for _, q := range cat.Quips {
		if _, err := tx.Exec(
			`INSERT INTO generic_quips (id, text, level_rank) VALUES (?, ?, ?)`,
			q.ID, q.Text, q.Level.Rank(),
		); err != nil {
			return fmt.Errorf("failed to insert quip %s: %w", q.ID, err)
		}
		for _, c := range q.Categories {
			if _, err := tx.Exec(
				`INSERT INTO quip_categories (quip_id, category) VALUES (?, ?)`,
				q.ID, c,
			); err != nil {
				return fmt.Errorf("failed to insert category for %s: %w", q.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	logging.Info("content", "imported %d easter eggs, %d generic quips",
		len(cat.EasterEggs), len(cat.Quips))
	return nil
}

// EasterEggs reconstructs the rule catalog in its authored order.
func (s *SQLiteStore) EasterEggs() ([]*rules.Rule, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(`SELECT id, type, tier, conditions FROM easter_eggs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query easter eggs: %w", err)
	}
	defer rows.Close()

	var out []*rules.Rule
	for rows.Next() {
		var r rules.Rule
		var tier, cond string
		if err := rows.Scan(&r.ID, &r.Type, &tier, &cond); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		r.Tier = rules.Tier(tier)
		if err := yaml.Unmarshal([]byte(cond), &r.Conditions); err != nil {
			return nil, &ShapeError{Source: s.path, Err: fmt.Errorf("rule %s conditions: %w", r.ID, err)}
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// EasterEggPool returns quip texts for a rule type at or below tier, in
// authored order.
func (s *SQLiteStore) EasterEggPool(ruleType string, tier quips.Level) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(
		`SELECT text FROM egg_quips WHERE rule_type = ? AND level_rank <= ? ORDER BY rule_id, position`,
		ruleType, tier.Rank(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query egg pool: %w", err)
	}
	defer rows.Close()
	return scanTexts(rows)
}

// GenericPool returns generic quip texts for a category at or below tier.
func (s *SQLiteStore) GenericPool(category string, tier quips.Level) ([]string, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(
		`SELECT q.text FROM generic_quips q
		 JOIN quip_categories c ON c.quip_id = q.id
		 WHERE c.category = ? AND q.level_rank <= ?
		 ORDER BY q.id`,
		category, tier.Rank(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query generic pool: %w", err)
	}
	defer rows.Close()
	return scanTexts(rows)
}

func scanTexts(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan text: %w", err)
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
