package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

// backends returns a fresh store of every kind that runs without services.
func backends(t *testing.T) map[string]Leaderboard {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Leaderboard{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestLeaderboardOrderingAndIsolation(t *testing.T) {
	ctx := context.Background()
	for name, lb := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, s := range []int{100, 50, 200} {
				if _, err := lb.SubmitScore(ctx, "maze", "ann", s); err != nil {
					t.Fatalf("SubmitScore(%d) failed: %v", s, err)
				}
			}
			if _, err := lb.SubmitScore(ctx, "other", "bob", 500); err != nil {
				t.Fatalf("SubmitScore() failed: %v", err)
			}

			top, err := lb.ListTop(ctx, "maze", 10)
			if err != nil {
				t.Fatalf("ListTop() failed: %v", err)
			}
			if len(top) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(top))
			}
			want := []int{200, 100, 50}
			for i, e := range top {
				if e.Score != want[i] {
					t.Errorf("entry %d: score %d, want %d", i, e.Score, want[i])
				}
				if e.Rank != i+1 {
					t.Errorf("entry %d: rank %d, want %d", i, e.Rank, i+1)
				}
				if e.RunID == "" {
					t.Errorf("entry %d has no run id", i)
				}
			}

			other, err := lb.ListTop(ctx, "other", 10)
			if err != nil {
				t.Fatalf("ListTop() failed: %v", err)
			}
			if len(other) != 1 {
				t.Errorf("expected 1 entry for other game, got %d", len(other))
			}
		})
	}
}

func TestLeaderboardKeepsTopTen(t *testing.T) {
	ctx := context.Background()
	for name, lb := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i := 1; i <= 12; i++ {
				if _, err := lb.SubmitScore(ctx, "maze", fmt.Sprintf("p%d", i), i*10); err != nil {
					t.Fatalf("SubmitScore() failed: %v", err)
				}
			}

			top, err := lb.ListTop(ctx, "maze", 0)
			if err != nil {
				t.Fatalf("ListTop() failed: %v", err)
			}
			if len(top) != MaxEntries {
				t.Fatalf("expected %d entries, got %d", MaxEntries, len(top))
			}
			if top[0].Score != 120 || top[len(top)-1].Score != 30 {
				t.Errorf("unexpected bounds: first %d, last %d", top[0].Score, top[len(top)-1].Score)
			}

			low, err := lb.SubmitScore(ctx, "maze", "late", 5)
			if err != nil {
				t.Fatalf("SubmitScore() failed: %v", err)
			}
			if low.Rank != 0 {
				t.Errorf("pruned entry should have rank 0, got %d", low.Rank)
			}

			high, err := lb.SubmitScore(ctx, "maze", "best", 1000)
			if err != nil {
				t.Fatalf("SubmitScore() failed: %v", err)
			}
			if high.Rank != 1 {
				t.Errorf("best entry should rank 1, got %d", high.Rank)
			}
		})
	}
}

func TestLeaderboardTiesKeepSubmissionOrder(t *testing.T) {
	ctx := context.Background()
	for name, lb := range backends(t) {
		t.Run(name, func(t *testing.T) {
			lb.SubmitScore(ctx, "maze", "first", 300)
			second, _ := lb.SubmitScore(ctx, "maze", "second", 300)
			if second.Rank != 2 {
				t.Errorf("tied later entry should rank 2, got %d", second.Rank)
			}

			top, err := lb.ListTop(ctx, "maze", 2)
			if err != nil {
				t.Fatalf("ListTop() failed: %v", err)
			}
			if len(top) != 2 || top[0].Name != "first" || top[1].Name != "second" {
				t.Errorf("unexpected tie order: %+v", top)
			}
		})
	}
}

func TestLeaderboardNamesAndValidation(t *testing.T) {
	ctx := context.Background()
	for name, lb := range backends(t) {
		t.Run(name, func(t *testing.T) {
			e, err := lb.SubmitScore(ctx, "maze", "   ", 10)
			if err != nil {
				t.Fatalf("SubmitScore() failed: %v", err)
			}
			if e.Name != DefaultName {
				t.Errorf("blank name stored as %q, want %q", e.Name, DefaultName)
			}

			e, _ = lb.SubmitScore(ctx, "maze", "  Zoe ", 20)
			if e.Name != "Zoe" {
				t.Errorf("name not trimmed: %q", e.Name)
			}

			if _, err := lb.SubmitScore(ctx, "maze", "x", -1); !errors.Is(err, ErrInvalidScore) {
				t.Errorf("negative score: got %v, want ErrInvalidScore", err)
			}
		})
	}
}

func TestLeaderboardHighScoreAndClear(t *testing.T) {
	ctx := context.Background()
	for name, lb := range backends(t) {
		t.Run(name, func(t *testing.T) {
			high, err := lb.HighScore(ctx, "maze")
			if err != nil {
				t.Fatalf("HighScore() failed: %v", err)
			}
			if high != 0 {
				t.Errorf("expected 0 for empty game, got %d", high)
			}

			lb.SubmitScore(ctx, "maze", "a", 100)
			lb.SubmitScore(ctx, "maze", "b", 300)
			lb.SubmitScore(ctx, "maze", "c", 200)

			high, _ = lb.HighScore(ctx, "maze")
			if high != 300 {
				t.Errorf("expected high score 300, got %d", high)
			}

			if err := lb.Clear(ctx, "maze"); err != nil {
				t.Fatalf("Clear() failed: %v", err)
			}
			top, _ := lb.ListTop(ctx, "maze", 10)
			if len(top) != 0 {
				t.Errorf("expected no entries after clear, got %d", len(top))
			}
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	lb, err := Open(ctx, MemoryDSN)
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := lb.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", lb)
	}

	lb, err = Open(ctx, filepath.Join(t.TempDir(), "nested", "scores.db"))
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	defer lb.Close()
	if _, ok := lb.(*SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", lb)
	}

	if _, err := Open(ctx, ""); err == nil {
		t.Error("expected error for empty location")
	}
}
