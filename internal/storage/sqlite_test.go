package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, r LevelResult) int64 {
	t.Helper()
	id, err := store.SaveResult(r)
	if err != nil {
		t.Fatalf("SaveResult(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, LevelResult{LevelID: "01", Steps: 4, Status: ResultCleared})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if best, ok, err := store.BestSteps("01"); err != nil || !ok || best != 4 {
		t.Errorf("BestSteps after reopen = %d, %v, %v", best, ok, err)
	}
}

func TestStoreBestResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, LevelResult{LevelID: "01", Player: "ann", Steps: 12, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "01", Player: "bob", Steps: 8, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "01", Player: "cid", Steps: 3, Status: ResultStepLimit})
	save(t, store, LevelResult{LevelID: "01", Player: "dee", Steps: 8, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "02", Player: "ann", Steps: 1, Status: ResultCleared})

	best, err := store.BestResults("01", 10)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 cleared runs, got %d", len(best))
	}

	// Fewest steps first, earlier run wins ties
	want := []string{"bob", "dee", "ann"}
	for i, r := range best {
		if r.Player != want[i] {
			t.Errorf("best[%d].Player = %q, expected %q", i, r.Player, want[i])
		}
		if r.Status != ResultCleared || r.LevelID != "01" {
			t.Errorf("best[%d] = %+v", i, r)
		}
		if r.RunID == "" {
			t.Errorf("best[%d] should have a generated run id", i)
		}
	}

	limited, err := store.BestResults("01", 1)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Steps != 8 {
		t.Errorf("limit 1 returned %+v", limited)
	}
}

func TestStoreBestSteps(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestSteps("01"); err != nil || ok {
		t.Errorf("empty level: ok=%v err=%v", ok, err)
	}

	save(t, store, LevelResult{LevelID: "01", Steps: 2, Status: ResultAbandoned})
	if _, ok, _ := store.BestSteps("01"); ok {
		t.Error("abandoned runs should not count as best")
	}

	save(t, store, LevelResult{LevelID: "01", Steps: 9, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "01", Steps: 7, Status: ResultCleared})
	best, ok, err := store.BestSteps("01")
	if err != nil || !ok || best != 7 {
		t.Errorf("BestSteps = %d, %v, %v; expected 7", best, ok, err)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.LevelStats("01")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Attempts != 0 || stats.Cleared != 0 || stats.BestSteps != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	save(t, store, LevelResult{LevelID: "01", Steps: 10, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "01", Steps: 6, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "01", Steps: 20, Status: ResultStepLimit})

	stats, err = store.LevelStats("01")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Cleared != 2 || stats.BestSteps != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgSteps != 12 {
		t.Errorf("AvgSteps = %v, expected 12", stats.AvgSteps)
	}
}

func TestStoreRecentAndRunResults(t *testing.T) {
	store := openTestStore(t)
	run := NewRunID()

	save(t, store, LevelResult{RunID: run, LevelID: "01", Steps: 2, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "03", Steps: 5, Status: ResultAbandoned})
	save(t, store, LevelResult{RunID: run, LevelID: "02", Steps: 30, Status: ResultStepLimit})

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].LevelID != "02" || recent[1].LevelID != "03" {
		t.Errorf("recent = %+v", recent)
	}

	runResults, err := store.RunResults(run)
	if err != nil {
		t.Fatalf("RunResults() failed: %v", err)
	}
	if len(runResults) != 2 || runResults[0].LevelID != "01" || runResults[1].LevelID != "02" {
		t.Errorf("run results = %+v", runResults)
	}

	played, err := store.PlayedLevels()
	if err != nil {
		t.Fatalf("PlayedLevels() failed: %v", err)
	}
	if len(played) != 3 || played[0] != "01" || played[2] != "03" {
		t.Errorf("played = %v", played)
	}
}

func TestStoreSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		r    LevelResult
	}{
		{"empty level", LevelResult{Steps: 1, Status: ResultCleared}},
		{"unknown status", LevelResult{LevelID: "01", Status: "won"}},
		{"negative steps", LevelResult{LevelID: "01", Steps: -1, Status: ResultCleared}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveResult(tc.r); !errors.Is(err, ErrInvalidResult) {
				t.Errorf("SaveResult() error = %v, expected ErrInvalidResult", err)
			}
		})
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, LevelResult{LevelID: "01", Steps: 4, Status: ResultCleared})
	save(t, store, LevelResult{LevelID: "02", Steps: 4, Status: ResultCleared})

	if err := store.ClearResults("01"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	if best, _ := store.BestResults("01", 10); len(best) != 0 {
		t.Errorf("Expected no results for 01 after clear, got %d", len(best))
	}
	if best, _ := store.BestResults("02", 10); len(best) != 1 {
		t.Errorf("Level 02 should not be affected by clearing 01")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
