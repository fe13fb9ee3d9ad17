// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultCacheTTL = 24 * time.Hour

// Cache stores lookup responses in SQLite so repeated queries for the same
// ingredient do not hammer the upstream APIs. All methods are best-effort
// and nil-safe: a nil *Cache, a broken database, or an expired row simply
// means a cache miss, never a lookup failure.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens or creates the lookup cache at path. A ttl of zero uses
// the default (24 h).
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS lookups (
		backend TEXT NOT NULL,
		query TEXT NOT NULL,
		max_results INTEGER NOT NULL,
		payload TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (backend, query, max_results)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get loads a fresh cached payload into out. It reports false on a miss, an
// expired row, or any decode/database error.
func (c *Cache) Get(ctx context.Context, backend, query string, maxResults int, out any) bool {
	if c == nil {
		return false
	}

	var payload, fetchedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM lookups WHERE backend = ? AND query = ? AND max_results = ?`,
		backend, query, maxResults,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		return false
	}

	at, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || time.Since(at) > c.ttl {
		return false
	}

	return json.Unmarshal([]byte(payload), out) == nil
}

// Put stores a lookup payload, replacing any previous row for the same key.
// Failures are swallowed.
func (c *Cache) Put(ctx context.Context, backend, query string, maxResults int, payload any) {
	if c == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.db.ExecContext(ctx,
		`INSERT INTO lookups (backend, query, max_results, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(backend, query, max_results) DO UPDATE SET
			payload=excluded.payload, fetched_at=excluded.fetched_at`,
		backend, query, maxResults, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
}
