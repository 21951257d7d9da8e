package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dstolz/logswap/internal/report"
	"github.com/dstolz/logswap/internal/sim"
)

// ErrRunNotFound is returned when a run id does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// SaveRun persists a completed run and returns its generated id. seed may
// be nil when the run used an unseeded random source.
func (s *RunStore) SaveRun(ctx context.Context, cfg sim.Config, seed *uint64, results []sim.DayResult) (string, error) {
	id, err := newRunID()
	if err != nil {
		return "", err
	}
	summary := report.Summarize(results)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seedVal sql.NullInt64
	if seed != nil {
		seedVal = sql.NullInt64{Int64: int64(*seed), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at,
			logs_per_day, log_retention_days, simulation_duration_days,
			log_delete_threshold_percent, max_swap_interval_days, max_deviation_fraction,
			seed, swaps, total_rows_copied, peak_total_records, final_total_records
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id, time.Now().UTC().Format(time.RFC3339),
		cfg.LogsPerDay, cfg.LogRetentionDays, cfg.SimulationDurationDays,
		cfg.LogDeleteThresholdPercent, cfg.MaxSwapIntervalDays, cfg.MaxDeviationFraction,
		seedVal, summary.Swaps, summary.TotalRowsCopied, summary.PeakTotalRecords, summary.FinalTotal,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_days (
			run_id, day, active_table_size, inactive_table_size, total_records,
			percent_not_expired, table_swap_occurred, table_swap_trigger,
			table_swap_count, rows_copied, next_swap_deadline,
			oldest_active_age_days, oldest_inactive_age_days, newest_inactive_age_days,
			elapsed_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare day insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		var elapsed sql.NullInt64
		if res.Elapsed != nil {
			elapsed = sql.NullInt64{Int64: res.Elapsed.Nanoseconds(), Valid: true}
		}
		_, err = stmt.ExecContext(ctx,
			id, res.Day, res.ActiveTableSize, res.InactiveTableSize, res.TotalRecords,
			res.PercentNotExpired, res.TableSwapOccurred, string(res.TableSwapTrigger),
			res.TableSwapCount, res.RowsCopied, res.NextSwapDeadline,
			res.OldestActiveAgeDays, res.OldestInactiveAgeDays, res.NewestInactiveAgeDays,
			elapsed,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert day %d: %w", res.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns saved runs, newest first. limit <= 0 means no limit.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	query := `
		SELECT id, created_at,
		       logs_per_day, log_retention_days, simulation_duration_days,
		       log_delete_threshold_percent, max_swap_interval_days, max_deviation_fraction,
		       seed, swaps, total_rows_copied, peak_total_records, final_total_records
		FROM runs
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var metas []RunMeta
	for rows.Next() {
		meta, err := scanRunMeta(rows)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// GetRun loads a saved run's metadata and full daily sequence.
func (s *RunStore) GetRun(ctx context.Context, id string) (RunMeta, []sim.DayResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at,
		       logs_per_day, log_retention_days, simulation_duration_days,
		       log_delete_threshold_percent, max_swap_interval_days, max_deviation_fraction,
		       seed, swaps, total_rows_copied, peak_total_records, final_total_records
		FROM runs WHERE id = ?
	`, id)
	meta, err := scanRunMeta(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunMeta{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return RunMeta{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT day, active_table_size, inactive_table_size, total_records,
		       percent_not_expired, table_swap_occurred, table_swap_trigger,
		       table_swap_count, rows_copied, next_swap_deadline,
		       oldest_active_age_days, oldest_inactive_age_days, newest_inactive_age_days,
		       elapsed_ns
		FROM run_days WHERE run_id = ? ORDER BY day
	`, id)
	if err != nil {
		return RunMeta{}, nil, fmt.Errorf("failed to query run days: %w", err)
	}
	defer rows.Close()

	var results []sim.DayResult
	for rows.Next() {
		var res sim.DayResult
		var trigger string
		var elapsed sql.NullInt64
		err := rows.Scan(
			&res.Day, &res.ActiveTableSize, &res.InactiveTableSize, &res.TotalRecords,
			&res.PercentNotExpired, &res.TableSwapOccurred, &trigger,
			&res.TableSwapCount, &res.RowsCopied, &res.NextSwapDeadline,
			&res.OldestActiveAgeDays, &res.OldestInactiveAgeDays, &res.NewestInactiveAgeDays,
			&elapsed,
		)
		if err != nil {
			return RunMeta{}, nil, fmt.Errorf("failed to scan run day: %w", err)
		}
		res.TableSwapTrigger = sim.Trigger(trigger)
		if elapsed.Valid {
			d := time.Duration(elapsed.Int64)
			res.Elapsed = &d
		}
		results = append(results, res)
	}
	return meta, results, rows.Err()
}

// DeleteRun removes a run and, via cascade, its daily rows.
func (s *RunStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRunMeta(row scanner) (RunMeta, error) {
	var meta RunMeta
	var createdAt string
	var seed sql.NullInt64
	err := row.Scan(
		&meta.ID, &createdAt,
		&meta.Config.LogsPerDay, &meta.Config.LogRetentionDays, &meta.Config.SimulationDurationDays,
		&meta.Config.LogDeleteThresholdPercent, &meta.Config.MaxSwapIntervalDays, &meta.Config.MaxDeviationFraction,
		&seed, &meta.Swaps, &meta.TotalRowsCopied, &meta.PeakTotal, &meta.FinalTotal,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunMeta{}, err
		}
		return RunMeta{}, fmt.Errorf("failed to scan run: %w", err)
	}

	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		meta.CreatedAt = t
	}
	if seed.Valid {
		v := uint64(seed.Int64)
		meta.Seed = &v
	}
	return meta, nil
}
