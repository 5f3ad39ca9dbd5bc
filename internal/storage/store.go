// Package storage persists leaderboard entries. SQLite is the default backend;
// a postgres:// DSN selects PostgreSQL and ":memory:" keeps scores in-process.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxEntries is the number of entries a leaderboard keeps per game.
const MaxEntries = 10

// DefaultName is stored when a submission carries a blank name.
const DefaultName = "Player"

// MemoryDSN selects the in-process backend.
const MemoryDSN = ":memory:"

// ErrInvalidScore is returned for negative scores.
var ErrInvalidScore = errors.New("storage: score must not be negative")

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	GameID    string    `json:"game_id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Rank      int       `json:"rank"` // 1-based; 0 when pruned on submit
	CreatedAt time.Time `json:"created_at"`
}

// Leaderboard is the score table shared by every frontend.
type Leaderboard interface {
	// SubmitScore records a finished run and trims the table to MaxEntries.
	SubmitScore(ctx context.Context, gameID, name string, score int) (ScoreEntry, error)
	// ListTop returns at most n entries, best first. Ties keep submission order.
	ListTop(ctx context.Context, gameID string, n int) ([]ScoreEntry, error)
	HighScore(ctx context.Context, gameID string) (int, error)
	Clear(ctx context.Context, gameID string) error
	Close() error
}

// Open picks a backend from the DSN.
func Open(ctx context.Context, dsn string) (Leaderboard, error) {
	switch {
	case dsn == MemoryDSN:
		return NewMemoryStore(), nil
	case dsn == "":
		return nil, fmt.Errorf("storage: empty database location")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pg, err := NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	// Typed nils must not escape as non-nil interfaces.
	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

func clampLimit(n int) int {
	if n <= 0 || n > MaxEntries {
		return MaxEntries
	}
	return n
}

func rankOrZero(better int) int {
	if better >= MaxEntries {
		return 0
	}
	return better + 1
}
