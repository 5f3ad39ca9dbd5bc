package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Leaderboard. The web server falls back to it
// when no database is reachable, and tests use it directly.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	games  map[string][]ScoreEntry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]ScoreEntry)}
}

// SubmitScore records the entry and keeps the best MaxEntries.
func (s *MemoryStore) SubmitScore(_ context.Context, gameID, name string, score int) (ScoreEntry, error) {
	if score < 0 {
		return ScoreEntry{}, ErrInvalidScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry := ScoreEntry{
		ID:        s.nextID,
		RunID:     uuid.NewString(),
		GameID:    gameID,
		Name:      normalizeName(name),
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	list := append(s.games[gameID], entry)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].ID < list[j].ID
	})

	better := 0
	for _, e := range list {
		if e.ID == entry.ID {
			break
		}
		better++
	}
	entry.Rank = rankOrZero(better)

	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	s.games[gameID] = list
	return entry, nil
}

// ListTop returns copies of the best n entries.
func (s *MemoryStore) ListTop(_ context.Context, gameID string, n int) ([]ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.games[gameID]
	n = clampLimit(n)
	if n > len(list) {
		n = len(list)
	}

	out := make([]ScoreEntry, n)
	copy(out, list[:n])
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// HighScore returns the best score, 0 when the game has none.
func (s *MemoryStore) HighScore(_ context.Context, gameID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list := s.games[gameID]; len(list) > 0 {
		return list[0].Score, nil
	}
	return 0, nil
}

// Clear drops every entry for the game.
func (s *MemoryStore) Clear(_ context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
