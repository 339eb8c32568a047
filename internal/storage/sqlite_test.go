package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

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
	if _, _, err := store.Complete("basics-001", 3, time.Second); err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.Best("basics-001")
	if err != nil || best == nil {
		t.Fatalf("Best() = %v, %v", best, err)
	}
	if best.Moves != 3 {
		t.Errorf("Moves = %d, expected 3", best.Moves)
	}
}

func TestSaveResultAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	a, err := store.SaveResult("lvl", 10, 1500*time.Millisecond)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	b, err := store.SaveResult("lvl", 12, 2*time.Second)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run IDs should be unique, got %q and %q", a.RunID, b.RunID)
	}

	recent, err := store.RecentResults("lvl", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recent))
	}
	if recent[0].RunID != b.RunID {
		t.Error("newest result should come first")
	}
	if recent[1].Elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 1.5s", recent[1].Elapsed)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestRecordBestRule(t *testing.T) {
	tests := []struct {
		name     string
		moves    int
		elapsed  time.Duration
		improved bool
	}{
		{"first run", 20, 10 * time.Second, true},
		{"fewer moves, slower", 15, 12 * time.Second, false},
		{"same moves, same time", 20, 10 * time.Second, false},
		{"more moves, faster", 25, 5 * time.Second, false},
		{"same moves, faster", 20, 9 * time.Second, true},
		{"fewer moves, faster", 18, 8 * time.Second, true},
	}

	store := openTestStore(t)
	for _, tc := range tests {
		improved, err := store.RecordBest("lvl", tc.moves, tc.elapsed)
		if err != nil {
			t.Fatalf("%s: RecordBest() failed: %v", tc.name, err)
		}
		if improved != tc.improved {
			t.Errorf("%s: improved = %v, expected %v", tc.name, improved, tc.improved)
		}
	}

	best, err := store.Best("lvl")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best.Moves != 18 || best.Elapsed != 8*time.Second {
		t.Errorf("best = %d moves %v, expected 18 moves 8s", best.Moves, best.Elapsed)
	}
}

func TestCompleteRecordsRunAndBest(t *testing.T) {
	store := openTestStore(t)

	res, improved, err := store.Complete("a", 7, 3*time.Second)
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if !improved {
		t.Error("first completion should be the best")
	}

	best, err := store.Best("a")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best.RunID != res.RunID {
		t.Errorf("best run = %s, expected %s", best.RunID, res.RunID)
	}

	_, improved, err = store.Complete("a", 9, time.Second)
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if improved {
		t.Error("more moves should not replace the best")
	}

	recent, _ := store.RecentResults("a", 0)
	if len(recent) != 2 {
		t.Errorf("expected 2 runs, got %d", len(recent))
	}
}

func TestBestMissing(t *testing.T) {
	store := openTestStore(t)

	best, err := store.Best("never")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != nil {
		t.Errorf("expected nil best, got %+v", best)
	}
}

func TestBestAllAndCompleted(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"b-002", "a-001", "b-001"} {
		if _, _, err := store.Complete(id, 5, time.Second); err != nil {
			t.Fatalf("Complete(%s) failed: %v", id, err)
		}
	}

	all, err := store.BestAll()
	if err != nil {
		t.Fatalf("BestAll() failed: %v", err)
	}
	if len(all) != 3 || all[0].LevelID != "a-001" || all[2].LevelID != "b-002" {
		t.Errorf("unexpected order: %+v", all)
	}

	done, err := store.CompletedLevels()
	if err != nil {
		t.Fatalf("CompletedLevels() failed: %v", err)
	}
	if !done["b-001"] || done["c-001"] {
		t.Errorf("unexpected completed set: %v", done)
	}
}

func TestClearLevel(t *testing.T) {
	store := openTestStore(t)
	store.Complete("x", 1, time.Second)
	store.Complete("y", 1, time.Second)

	if err := store.ClearLevel("x"); err != nil {
		t.Fatalf("ClearLevel() failed: %v", err)
	}

	if best, _ := store.Best("x"); best != nil {
		t.Error("best should be cleared")
	}
	if recent, _ := store.RecentResults("x", 5); len(recent) != 0 {
		t.Error("results should be cleared")
	}
	if best, _ := store.Best("y"); best == nil {
		t.Error("other levels should be kept")
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty store stats = %+v", stats)
	}

	store.Complete("a", 4, 2*time.Second)
	store.Complete("a", 6, 3*time.Second)
	store.Complete("b", 10, time.Second)

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("Runs = %d, expected 3", stats.Runs)
	}
	if stats.LevelsSolved != 2 {
		t.Errorf("LevelsSolved = %d, expected 2", stats.LevelsSolved)
	}
	if stats.TotalMoves != 20 {
		t.Errorf("TotalMoves = %d, expected 20", stats.TotalMoves)
	}
	if stats.TotalTime != 6*time.Second {
		t.Errorf("TotalTime = %v, expected 6s", stats.TotalTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestForPlayerSeparatesRecords(t *testing.T) {
	store := openTestStore(t)
	alice := store.ForPlayer("alice")
	bob := store.ForPlayer("bob")

	if _, _, err := alice.Complete("basics-001", 5, 2*time.Second); err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	// Bob's slower run is still his first best.
	_, improved, err := bob.Complete("basics-001", 9, 4*time.Second)
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if !improved {
		t.Error("first run of another player should be a best")
	}

	best, err := alice.Best("basics-001")
	if err != nil || best == nil || best.Moves != 5 {
		t.Fatalf("alice Best() = %+v, %v", best, err)
	}
	best, err = bob.Best("basics-001")
	if err != nil || best == nil || best.Moves != 9 {
		t.Fatalf("bob Best() = %+v, %v", best, err)
	}

	// The local player has no records.
	done, err := store.CompletedLevels()
	if err != nil {
		t.Fatalf("CompletedLevels() failed: %v", err)
	}
	if len(done) != 0 {
		t.Errorf("local player completed = %v, expected none", done)
	}

	if err := bob.ClearLevel("basics-001"); err != nil {
		t.Fatalf("ClearLevel() failed: %v", err)
	}
	if best, _ := alice.Best("basics-001"); best == nil {
		t.Error("clearing bob's level must keep alice's best")
	}

	stats, err := alice.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 1 {
		t.Errorf("alice Runs = %d, expected 1", stats.Runs)
	}
	if alice.Player() != "alice" {
		t.Errorf("Player() = %q", alice.Player())
	}
}

func TestForPlayerCloseKeepsDatabase(t *testing.T) {
	store := openTestStore(t)

	if err := store.ForPlayer("alice").Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, _, err := store.Complete("basics-001", 3, time.Second); err != nil {
		t.Errorf("base store unusable after closing a player store: %v", err)
	}
}
