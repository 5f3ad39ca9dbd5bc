package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	saved, err := store.SubmitScore(ctx, "maze", "ann", 420)
	if err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}
	store.Close()

	store, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	top, err := store.ListTop(ctx, "maze", 10)
	if err != nil {
		t.Fatalf("ListTop() failed: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(top))
	}
	got := top[0]
	if got.RunID != saved.RunID || got.Name != "ann" || got.Score != 420 {
		t.Errorf("entry mismatch: got %+v, saved %+v", got, saved)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at was not parsed")
	}
}
