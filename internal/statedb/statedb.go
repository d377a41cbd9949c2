package statedb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nkvale/quickfind/pkg/types"
)

// DB wraps a SQLite connection holding the crawl pipeline's persisted state.
type DB struct {
	db *sql.DB
}

// Open opens or creates the state database at path and applies migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("statedb: open %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statedb: enable WAL: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statedb: enable foreign keys: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statedb: migrate: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// NeedsReindex implements the Identity & Dedup Cache contract:
// fails open, returning true on a cache miss.
func (d *DB) NeedsReindex(ctx context.Context, path string, mtime int64, size uint64) (bool, error) {
	var gotMTime int64
	var gotSize uint64
	err := d.db.QueryRowContext(ctx,
		"SELECT mtime, size FROM dedup_cache WHERE path = ?", path,
	).Scan(&gotMTime, &gotSize)
	switch {
	case err == sql.ErrNoRows:
		return true, nil
	case err != nil:
		return true, fmt.Errorf("statedb: dedup lookup %s: %w", path, err)
	}
	return gotMTime != mtime || gotSize != size, nil
}

// RecordIngested updates the dedup cache after a document has been
// committed, per the contract: subsequent NeedsReindex calls for the
// same (path, mtime, size) return false.
func (d *DB) RecordIngested(ctx context.Context, m types.Meta) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO dedup_cache (path, mtime, size, inode, dev, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			size = excluded.size,
			inode = excluded.inode,
			dev = excluded.dev,
			updated_at = CURRENT_TIMESTAMP
	`, m.Path, m.MTime, m.Size, m.Inode, m.Dev)
	if err != nil {
		return fmt.Errorf("statedb: record ingested %s: %w", m.Path, err)
	}
	return nil
}

// ClearDedupCache wipes the dedup cache, used by reset_and_start before a
// full rebuild.
func (d *DB) ClearDedupCache(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM dedup_cache")
	if err != nil {
		return fmt.Errorf("statedb: clear dedup cache: %w", err)
	}
	return nil
}

// BucketProgress returns the next bucket index to process for root, and
// whether an entry existed (false means start from the beginning).
func (d *DB) BucketProgress(ctx context.Context, root string) (int, bool, error) {
	var idx int
	err := d.db.QueryRowContext(ctx,
		"SELECT next_bucket_index FROM bucket_progress WHERE root_path = ?", root,
	).Scan(&idx)
	switch {
	case err == sql.ErrNoRows:
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("statedb: read bucket progress %s: %w", root, err)
	}
	return idx, true, nil
}

// SetBucketProgress records the next bucket index to process for root, for
// full-mode resume across interrupted runs.
func (d *DB) SetBucketProgress(ctx context.Context, root string, nextBucketIndex int) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO bucket_progress (root_path, next_bucket_index, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(root_path) DO UPDATE SET
			next_bucket_index = excluded.next_bucket_index,
			updated_at = CURRENT_TIMESTAMP
	`, root, nextBucketIndex)
	if err != nil {
		return fmt.Errorf("statedb: set bucket progress %s: %w", root, err)
	}
	return nil
}

// ClearBucketProgress removes a root's resume entry on successful full-mode
// completion.
func (d *DB) ClearBucketProgress(ctx context.Context, root string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM bucket_progress WHERE root_path = ?", root)
	if err != nil {
		return fmt.Errorf("statedb: clear bucket progress %s: %w", root, err)
	}
	return nil
}

// kv helpers back last_completed_at and any other small scalar state that
// doesn't warrant its own table.

// GetString returns a stored value, or ("", false, nil) if absent.
func (d *DB) GetString(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM kv_state WHERE key = ?", key).Scan(&val)
	switch {
	case err == sql.ErrNoRows:
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("statedb: get %s: %w", key, err)
	}
	return val, true, nil
}

// SetString stores a scalar value under key.
func (d *DB) SetString(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("statedb: set %s: %w", key, err)
	}
	return nil
}

// Keys recognized in kv_state.
const (
	KeyLastCompletedAt = "last_completed_at"
)
