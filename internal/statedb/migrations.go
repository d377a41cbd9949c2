package statedb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentSchemaVersion tracks the state database schema version.
const CurrentSchemaVersion = "1.0.0"

// Migration is one versioned step in the state database's schema history.
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all state database migrations in order.
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Identity & Dedup Cache: path -> last-ingested fingerprint.
CREATE TABLE IF NOT EXISTS dedup_cache (
    path TEXT PRIMARY KEY,
    mtime INTEGER NOT NULL,
    size INTEGER NOT NULL,
    inode INTEGER NOT NULL DEFAULT 0,
    dev INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Full-mode resume progress (): per-root next bucket index.
CREATE TABLE IF NOT EXISTS bucket_progress (
    root_path TEXT PRIMARY KEY,
    next_bucket_index INTEGER NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Miscellaneous scalar state: last_completed_at and friends.
CREATE TABLE IF NOT EXISTS kv_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationV1Down = `
DROP TABLE IF EXISTS kv_state;
DROP TABLE IF EXISTS bucket_progress;
DROP TABLE IF EXISTS dedup_cache;
DROP TABLE IF EXISTS schema_version;
`

// ApplyMigrations runs all pending migrations against db.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)

	var currentVersion *semver.Version
	switch {
	case err == sql.ErrNoRows:
		currentVersion = semver.MustParse("0.0.0")
	case err != nil:
		return fmt.Errorf("check schema_version table: %w", err)
	default:
		var currentVersionStr string
		err = db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersionStr)
		switch {
		case err == sql.ErrNoRows || currentVersionStr == "":
			currentVersion = semver.MustParse("0.0.0")
		case err != nil:
			return fmt.Errorf("read schema_version: %w", err)
		default:
			currentVersion, err = semver.NewVersion(currentVersionStr)
			if err != nil {
				return fmt.Errorf("invalid current schema version %s: %w", currentVersionStr, err)
			}
		}
	}

	for _, migration := range AllMigrations {
		migrationVersion, err := semver.NewVersion(migration.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", migration.Version, err)
		}

		if !currentVersion.LessThan(migrationVersion) {
			continue
		}

		if _, err := db.ExecContext(ctx, migration.Up); err != nil {
			return fmt.Errorf("apply migration %s: %w", migration.Version, err)
		}

		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Version, err)
		}

		currentVersion = migrationVersion
	}

	return nil
}
