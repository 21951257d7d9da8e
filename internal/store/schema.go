package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the run-history store.
const schemaV1 = `
-- One row per saved simulation run, with its configuration and the
-- headline summary figures shown by 'logswap history'.
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,

    -- Configuration
    logs_per_day INTEGER NOT NULL,
    log_retention_days INTEGER NOT NULL,
    simulation_duration_days INTEGER NOT NULL,
    log_delete_threshold_percent INTEGER NOT NULL,
    max_swap_interval_days INTEGER NOT NULL,
    max_deviation_fraction REAL NOT NULL,
    seed INTEGER,  -- NULL when the run used an unseeded source

    -- Summary
    swaps INTEGER NOT NULL,
    total_rows_copied INTEGER NOT NULL,
    peak_total_records INTEGER NOT NULL,
    final_total_records INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- One row per simulated day of a saved run.
CREATE TABLE IF NOT EXISTS run_days (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    active_table_size INTEGER NOT NULL,
    inactive_table_size INTEGER NOT NULL,
    total_records INTEGER NOT NULL,
    percent_not_expired INTEGER NOT NULL,
    table_swap_occurred INTEGER NOT NULL,
    table_swap_trigger TEXT NOT NULL,
    table_swap_count INTEGER NOT NULL,
    rows_copied INTEGER NOT NULL,
    next_swap_deadline INTEGER NOT NULL,
    oldest_active_age_days INTEGER NOT NULL,
    oldest_inactive_age_days INTEGER NOT NULL,
    newest_inactive_age_days INTEGER NOT NULL,
    elapsed_ns INTEGER,  -- NULL unless the run captured timing
    PRIMARY KEY (run_id, day)
);

CREATE TABLE IF NOT EXISTS schema_meta (
    version INTEGER NOT NULL
);
`

// InitSchema creates the tables if they do not exist and records the
// schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_meta`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_meta (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}
