package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/hardest-game/internal/leaderboard"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.hardest/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".hardest", "scores.db"); got != want {
		t.Errorf("ExpandHome = %q, want %q", got, want)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestLeaderboardKeepsBestPerPlayer(t *testing.T) {
	store := openTestStore(t)

	submits := []leaderboard.Score{
		{Player: "alice", Score: 100},
		{Player: "bob", Score: 300},
		{Player: "alice", Score: 250},
		{Player: "carol", Score: 250},
		{Player: "bob", Score: 50},
		{Player: " alice ", Score: 120},
	}
	for _, s := range submits {
		if err := store.Submit(s); err != nil {
			t.Fatalf("Submit(%v) failed: %v", s, err)
		}
	}

	top, err := store.Top(0)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}

	want := []leaderboard.Score{
		{Player: "bob", Score: 300},
		{Player: "alice", Score: 250},
		{Player: "carol", Score: 250},
	}
	if len(top) != len(want) {
		t.Fatalf("Expected %d entries, got %v", len(want), top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("rank %d = %v, want %v", i+1, top[i], want[i])
		}
	}

	limited, err := store.Top(2)
	if err != nil {
		t.Fatalf("Top(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 entries with limit, got %d", len(limited))
	}
}

func TestLeaderboardRejectsEmptyPlayer(t *testing.T) {
	store := openTestStore(t)

	if err := store.Submit(leaderboard.Score{Player: "  ", Score: 1}); !errors.Is(err, leaderboard.ErrEmptyPlayer) {
		t.Errorf("Submit() = %v, want ErrEmptyPlayer", err)
	}
	top, _ := store.Top(0)
	if len(top) != 0 {
		t.Errorf("Expected empty board, got %v", top)
	}
}

func TestLeaderboardConcurrentSubmit(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Submit(leaderboard.Score{Player: "racer", Score: uint32(i)}); err != nil {
				t.Errorf("Submit() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	top, err := store.Top(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Score != 20 {
		t.Errorf("Expected single entry with 20, got %v", top)
	}
}

func TestLeaderboardPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = first.Submit(leaderboard.Score{Player: "p", Score: 7})
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	top, err := second.Top(0)
	if err != nil || len(top) != 1 || top[0].Score != 7 {
		t.Errorf("after reopen: %v, %v", top, err)
	}
}

func TestRunsHistory(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Level: "classic", Player: "me", Best: 120, Attempts: 4, Ticks: 400},
		{Level: "classic", Player: "me", Best: 600, Attempts: 2, Ticks: 900},
		{Level: "practice", Player: "me", Best: 3000, Attempts: 1, Ticks: 3000},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Level != "practice" || recent[1].Best != 600 {
		t.Errorf("Unexpected recent runs: %+v", recent)
	}

	best, err := store.PersonalBest("classic", "me")
	if err != nil {
		t.Fatalf("PersonalBest() failed: %v", err)
	}
	if best != 600 {
		t.Errorf("Expected personal best 600, got %d", best)
	}

	if other, _ := store.PersonalBest("classic", "someone"); other != 0 {
		t.Errorf("PersonalBest(classic, someone) = %d, expected 0", other)
	}

	none, err := store.PersonalBest("unknown", "me")
	if err != nil || none != 0 {
		t.Errorf("PersonalBest(unknown) = %d, %v", none, err)
	}

	if _, err := store.SaveRun(Run{}); err == nil {
		t.Error("SaveRun() without level should fail")
	}
}

func TestLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Level: "classic", Best: 100, Attempts: 3, Ticks: 300})
	store.SaveRun(Run{Level: "classic", Best: 300, Attempts: 5, Ticks: 700})
	store.SaveRun(Run{Level: "practice", Best: 50, Attempts: 1, Ticks: 50})

	stats, err := store.GetLevelStats("classic")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Best != 300 || stats.AvgBest != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.TotalAttempts != 8 || stats.TotalTicks != 1000 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetLevelStats("nothing")
	if err != nil {
		t.Fatalf("GetLevelStats(nothing) failed: %v", err)
	}
	if empty.Runs != 0 || empty.Best != 0 {
		t.Errorf("Unexpected stats for unplayed level: %+v", empty)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all["practice"].Runs != 1 {
		t.Errorf("Unexpected all stats: %v", all)
	}

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if cleared, err := store.GetLevelStats("classic"); err != nil || cleared.Runs != 0 {
		t.Errorf("Expected cleared history, got %+v, %v", cleared, err)
	}
}
