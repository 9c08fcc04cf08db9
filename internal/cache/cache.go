// Package cache persists parsed package models keyed by BUILD-file path and
// content hash, so unchanged files are not re-parsed across workspace scans.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dvolkhin/bazelproj/internal/project"
)

// ErrNotFound is returned when no entry exists for a path, or the stored
// entry was produced from different file content.
var ErrNotFound = errors.New("cache entry not found")

// Cache is a SQLite-backed store of PackageInfo values.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS packages (
	path         TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	payload      BLOB NOT NULL,
	updated_at   TEXT NOT NULL
);
`

// Open opens (creating if needed) the cache database at dbPath.
func Open(dbPath string) (*Cache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// WAL mode for better concurrency; SQLite still wants a single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached package for path, but only when it was stored for
// the same content hash. A miss of either kind is ErrNotFound.
func (c *Cache) Get(ctx context.Context, path, contentHash string) (project.PackageInfo, error) {
	var storedHash string
	var payload []byte
	row := c.db.QueryRowContext(ctx,
		`SELECT content_hash, payload FROM packages WHERE path = ?`, path)
	if err := row.Scan(&storedHash, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.PackageInfo{}, ErrNotFound
		}
		return project.PackageInfo{}, fmt.Errorf("reading cache entry: %w", err)
	}
	if storedHash != contentHash {
		return project.PackageInfo{}, ErrNotFound
	}

	var pkg project.PackageInfo
	if err := json.Unmarshal(payload, &pkg); err != nil {
		// A corrupt payload behaves like a miss; the caller re-parses.
		return project.PackageInfo{}, ErrNotFound
	}
	return pkg, nil
}

// Put stores (or replaces) the package parsed from the file at path with the
// given content hash.
func (c *Cache) Put(ctx context.Context, path, contentHash string, pkg project.PackageInfo) error {
	payload, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO packages (path, content_hash, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			payload      = excluded.payload,
			updated_at   = excluded.updated_at
	`, path, contentHash, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for path, if any.
func (c *Cache) Delete(ctx context.Context, path string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM packages WHERE path = ?`, path); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Prune drops entries whose path is not in keep, returning how many were
// removed. Used after a scan to evict BUILD files that no longer exist.
func (c *Cache) Prune(ctx context.Context, keep map[string]struct{}) (int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT path FROM packages`)
	if err != nil {
		return 0, fmt.Errorf("listing cache entries: %w", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning cache entry: %w", err)
		}
		if _, ok := keep[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, path := range stale {
		if err := c.Delete(ctx, path); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Count returns the number of stored entries.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}
