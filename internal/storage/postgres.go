package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS scores (
    id BIGSERIAL PRIMARY KEY,
    run_id TEXT NOT NULL,
    game_id TEXT NOT NULL,
    name TEXT NOT NULL,
    score INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
`

// PostgresStore implements Leaderboard using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// SubmitScore inserts the entry and prunes the table in one transaction.
func (s *PostgresStore) SubmitScore(ctx context.Context, gameID, name string, score int) (ScoreEntry, error) {
	if score < 0 {
		return ScoreEntry{}, ErrInvalidScore
	}

	entry := ScoreEntry{
		RunID:  uuid.NewString(),
		GameID: gameID,
		Name:   normalizeName(name),
		Score:  score,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO scores (run_id, game_id, name, score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		entry.RunID, entry.GameID, entry.Name, entry.Score,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	var better int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM scores
		 WHERE game_id = $1 AND (score > $2 OR (score = $2 AND id < $3))`,
		gameID, score, entry.ID,
	).Scan(&better)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	entry.Rank = rankOrZero(better)

	_, err = tx.Exec(ctx,
		`DELETE FROM scores
		 WHERE game_id = $1 AND id NOT IN (
			SELECT id FROM scores WHERE game_id = $1
			ORDER BY score DESC, id ASC
			LIMIT $2
		 )`,
		gameID, MaxEntries,
	)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot prune scores: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return entry, nil
}

// ListTop returns the best n entries for a game.
func (s *PostgresStore) ListTop(ctx context.Context, gameID string, n int) ([]ScoreEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, run_id, game_id, name, score, created_at
		 FROM scores
		 WHERE game_id = $1
		 ORDER BY score DESC, id ASC
		 LIMIT $2`,
		gameID, clampLimit(n),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a game, 0 when there is none.
func (s *PostgresStore) HighScore(ctx context.Context, gameID string) (int, error) {
	var score *int
	err := s.pool.QueryRow(ctx,
		`SELECT MAX(score) FROM scores WHERE game_id = $1`, gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if score == nil {
		return 0, nil
	}
	return *score, nil
}

// Clear deletes all scores for the given game.
func (s *PostgresStore) Clear(ctx context.Context, gameID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM scores WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanEntry(row pgx.Row) (ScoreEntry, error) {
	var e ScoreEntry
	var createdAt time.Time
	if err := row.Scan(&e.ID, &e.RunID, &e.GameID, &e.Name, &e.Score, &createdAt); err != nil {
		return ScoreEntry{}, err
	}
	e.CreatedAt = createdAt.UTC()
	return e, nil
}
