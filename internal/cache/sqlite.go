// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "session.db"

// SQLite is the session-scoped Store: a single-table SQLite database under
// the configured cache directory. Entries older than the session TTL are
// treated as absent and purged on read, which is how a browsing "session"
// ends for a store that outlives the process.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLite opens or creates the session database at dir/session.db and
// creates the schema if it does not exist.
func NewSQLite(dir string, ttl time.Duration) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &SQLite{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS bundles (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the payload for key if it exists and has not expired.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM bundles WHERE key = ?`, key,
	).Scan(&payload, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading bundle: %w", err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil || time.Since(created) > s.ttl {
		// Expired or unreadable timestamp: drop the row and report a miss.
		s.db.ExecContext(ctx, `DELETE FROM bundles WHERE key = ?`, key)
		return nil, false, nil
	}
	return []byte(payload), true, nil
}

// Put upserts the payload under key. Re-writing an identifier refreshes its
// session timestamp; the payload for a given identifier never changes
// within a session.
func (s *SQLite) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bundles (key, payload, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload=excluded.payload, created_at=excluded.created_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	return nil
}

// Keys lists the keys of all unexpired entries.
func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	cutoff := time.Now().UTC().Add(-s.ttl).Format(time.RFC3339Nano)
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM bundles WHERE created_at > ? ORDER BY key`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Clear drops every entry.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bundles`); err != nil {
		return fmt.Errorf("clearing bundles: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
