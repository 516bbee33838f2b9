package content

import (
	"testing"

	"github.com/Phazzie/tabbymctabface/internal/quips"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteImportRoundTrip(t *testing.T) {
	cat, err := LoadCatalog(writeCatalog(t, eggsYAML, quipsYAML))
	if err != nil {
		t.Fatal(err)
	}

	store := openTestStore(t)
	if err := store.Import(cat); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	eggs, err := store.EasterEggs()
	if err != nil {
		t.Fatalf("EasterEggs failed: %v", err)
	}
	if len(eggs) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(eggs))
	}
	if eggs[0].ID != "answer" || eggs[1].ID != "night" {
		t.Errorf("authored order not preserved: %s, %s", eggs[0].ID, eggs[1].ID)
	}
	if eggs[0].Conditions.TabCount == nil || *eggs[0].Conditions.TabCount.Exact != 42 {
		t.Errorf("conditions did not round-trip: %+v", eggs[0].Conditions)
	}
	if eggs[1].Conditions.Hours == nil || eggs[1].Conditions.Hours.Start != 22 {
		t.Errorf("hour range did not round-trip: %+v", eggs[1].Conditions)
	}
}

func TestSQLitePools(t *testing.T) {
	cat, err := LoadCatalog(writeCatalog(t, eggsYAML, quipsYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := openTestStore(t)
	if err := store.Import(cat); err != nil {
		t.Fatal(err)
	}

	pool, err := store.EasterEggPool("milestone", quips.LevelNormal)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 1 || pool[0] != "forty-two" {
		t.Errorf("milestone egg pool wrong: %v", pool)
	}

	// Spicy-leveled egg pool is invisible below its tier
	pool, err = store.EasterEggPool("ambient", quips.LevelNormal)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 0 {
		t.Errorf("expected empty pool, got %v", pool)
	}

	pool, err = store.GenericPool("tab_open", quips.LevelNormal)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 1 || pool[0] != "a tab quip" {
		t.Errorf("tab_open generic pool wrong: %v", pool)
	}

	pool, err = store.GenericPool("group", quips.LevelMild)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 1 {
		t.Errorf("mild group pool wrong: %v", pool)
	}
}

func TestSQLiteReimportReplaces(t *testing.T) {
	cat, err := LoadCatalog(writeCatalog(t, eggsYAML, quipsYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := openTestStore(t)
	if err := store.Import(cat); err != nil {
		t.Fatal(err)
	}

	cat.EasterEggs = cat.EasterEggs[:1]
	if err := store.Import(cat); err != nil {
		t.Fatal(err)
	}

	eggs, err := store.EasterEggs()
	if err != nil {
		t.Fatal(err)
	}
	if len(eggs) != 1 {
		t.Errorf("reimport should replace the catalog, got %d rules", len(eggs))
	}
}
