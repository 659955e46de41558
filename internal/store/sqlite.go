// Package store persists generation session snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/climate-report-service/internal/product"
)

// ErrNotFound is returned by Load when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		state INTEGER NOT NULL,
		status INTEGER NOT NULL,
		period_type INTEGER NOT NULL,
		snapshot TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_state ON sessions(state);
`

// SQLiteStore stores one snapshot row per session. Denormalized state and
// period columns exist for filtering; the snapshot is authoritative.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the sessions table if it does not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Save inserts or replaces the session's snapshot.
func (s *SQLiteStore) Save(ctx context.Context, session *product.Session) error {
	data, err := product.MarshalSnapshot(session)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, state, status, period_type, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			status = excluded.status,
			period_type = excluded.period_type,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		session.ID,
		int(session.State),
		int(session.Status),
		session.Period.Type.Code,
		string(data),
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
		session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// Load returns the session stored under id, or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*product.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM sessions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return product.UnmarshalSnapshot([]byte(data))
}

// ListByState returns every session in state, oldest first.
func (s *SQLiteStore) ListByState(ctx context.Context, state product.SessionState) ([]*product.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot FROM sessions WHERE state = ? ORDER BY created_at, id`, int(state))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*product.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session, err := product.UnmarshalSnapshot([]byte(data))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Ping reports whether the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
