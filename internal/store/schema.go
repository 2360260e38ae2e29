package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite store.
const schemaV1 = `
-- One row per experiment invocation
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    agents INTEGER NOT NULL,
    slots INTEGER NOT NULL,
    episodes INTEGER NOT NULL,
    max_edges INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

-- One row per (episode, strategy)
CREATE TABLE IF NOT EXISTS metrics (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    episode INTEGER NOT NULL,
    position INTEGER NOT NULL,  -- strategy order within the episode
    strategy TEXT NOT NULL,
    conflicts INTEGER NOT NULL,
    delay INTEGER NOT NULL,
    utilization REAL NOT NULL,
    success_rate REAL NOT NULL,
    throughput INTEGER NOT NULL,
    PRIMARY KEY (run_id, episode, position)
);
CREATE INDEX IF NOT EXISTS idx_metrics_strategy ON metrics(strategy);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema creates the schema on a fresh database and validates an
// existing one.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}

	if currentVersion > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", currentVersion, SchemaVersion)
	}

	if err := ValidateIntegrity(ctx, db); err != nil {
		return fmt.Errorf("database integrity check failed: %w", err)
	}

	return nil
}

// getSchemaVersion returns the current schema version from the database.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// createSchema creates the initial database schema.
func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// ValidateIntegrity runs SQLite's integrity and foreign key checks.
func ValidateIntegrity(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `PRAGMA integrity_check`)
	if err != nil {
		return fmt.Errorf("failed to run integrity_check: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return fmt.Errorf("failed to scan integrity_check result: %w", err)
		}
		if result != "ok" {
			return fmt.Errorf("integrity_check failed: %s", result)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read integrity_check results: %w", err)
	}

	fkRows, err := db.QueryContext(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return fmt.Errorf("failed to run foreign_key_check: %w", err)
	}
	defer fkRows.Close()

	var fkErrors []string
	for fkRows.Next() {
		var table, parent string
		var rowid, fkid sql.NullInt64
		if err := fkRows.Scan(&table, &rowid, &parent, &fkid); err != nil {
			return fmt.Errorf("failed to scan foreign_key_check result: %w", err)
		}
		fkErrors = append(fkErrors, fmt.Sprintf("%s row %d references missing %s", table, rowid.Int64, parent))
	}
	if len(fkErrors) > 0 {
		return fmt.Errorf("foreign key violations: %s", strings.Join(fkErrors, "; "))
	}

	return fkRows.Err()
}
