// Package storage provides the SQLite-based session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome values recorded for a session.
const (
	OutcomeWin       = "win"
	OutcomeOver      = "over"
	OutcomeAbandoned = "abandoned" // Closed before reaching a terminal state
)

// timeLayout is how created_at is written; sqlite sorts it lexically.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Record is one ended session. No score exists; the journal only keeps
// how a session ended.
type Record struct {
	ID        string
	Seed      int64
	Layout    string
	Outcome   string
	Steps     int
	Destroyed int
	Total     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats counts journaled sessions per outcome.
type Stats struct {
	Sessions  int
	Wins      int
	Losses    int
	Abandoned int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			layout TEXT NOT NULL,
			outcome TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			destroyed INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_outcome ON sessions(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSession stores an ended session. A zero CreatedAt is set to now.
func (s *Store) RecordSession(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("storage: session record has no id")
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, seed, layout, outcome, steps, destroyed, total, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Layout, r.Outcome, r.Steps, r.Destroyed, r.Total,
		r.Duration.Milliseconds(), created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record session %s: %w", r.ID, err)
	}
	return nil
}

// RecentSessions retrieves the newest sessions first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, layout, outcome, steps, destroyed, total, duration_ms, created_at
		 FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Layout, &r.Outcome, &r.Steps, &r.Destroyed, &r.Total, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond

		// Parse the timestamp - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse(timeLayout, v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats returns outcome counts over the whole journal.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM sessions GROUP BY outcome`)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return Stats{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.Sessions += n
		switch outcome {
		case OutcomeWin:
			st.Wins += n
		case OutcomeOver:
			st.Losses += n
		case OutcomeAbandoned:
			st.Abandoned += n
		}
	}

	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return st, nil
}

// ClearSessions deletes all journaled sessions.
func (s *Store) ClearSessions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	return "~/.breakout/journal.db"
}
