package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brian/letter-agent/internal/types"
)

// PGStore persists sessions as JSON rows in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// ConnectPG establishes a connection pool and verifies it.
func ConnectPG(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// Close releases the connection pool.
func (pg *PGStore) Close() {
	if pg.pool != nil {
		pg.pool.Close()
	}
}

// Save upserts the session snapshot.
func (pg *PGStore) Save(ctx context.Context, s *types.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = pg.pool.Exec(ctx,
		`INSERT INTO letter_sessions (id, started_at, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = $3, updated_at = NOW()`,
		s.ID, s.StartedAt, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// Load retrieves a session snapshot by ID.
func (pg *PGStore) Load(ctx context.Context, id string) (*types.Session, error) {
	var data []byte
	err := pg.pool.QueryRow(ctx,
		`SELECT data FROM letter_sessions WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %s not found", id)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var s types.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	if s.Variants == nil {
		s.Variants = make(map[string]*types.Letter)
	}
	if s.States == nil {
		s.States = make(map[string]types.ReviewState)
	}
	return &s, nil
}
