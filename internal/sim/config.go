package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New when a configuration parameter is
// outside its declared range. It is the only engine-level error; once a
// configuration validates, the per-day computation cannot fail.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the six simulation parameters. It is supplied once to New
// and never mutated by the engine.
type Config struct {
	// LogsPerDay is the baseline number of log records written per
	// simulated day. Must be >= 1.
	LogsPerDay int `json:"logs_per_day" yaml:"logs_per_day"`

	// LogRetentionDays is the number of days a record is kept before it
	// becomes eligible for expiration. Must be >= 1.
	LogRetentionDays int `json:"log_retention_days" yaml:"log_retention_days"`

	// SimulationDurationDays is the number of days to simulate. Zero
	// defaults to 2 * LogRetentionDays.
	SimulationDurationDays int `json:"simulation_duration_days" yaml:"simulation_duration_days"`

	// LogDeleteThresholdPercent triggers a swap when the percentage of
	// not-yet-expired records in the inactive table drops to or below it.
	// Range 0-100 inclusive; 0 is valid but effectively disables the
	// threshold trigger.
	LogDeleteThresholdPercent int `json:"log_delete_threshold_percent" yaml:"log_delete_threshold_percent"`

	// MaxSwapIntervalDays is the maximum number of days allowed between
	// swaps regardless of the threshold. Must be >= 1.
	MaxSwapIntervalDays int `json:"max_swap_interval_days" yaml:"max_swap_interval_days"`

	// MaxDeviationFraction is the fraction of LogsPerDay that may be
	// randomly added or subtracted each day. Range 0-1 inclusive; 0 makes
	// the run fully deterministic.
	MaxDeviationFraction float64 `json:"max_deviation_fraction" yaml:"max_deviation_fraction"`
}

// WithDefaults returns a copy with the duration default applied: a zero
// SimulationDurationDays becomes 2 * LogRetentionDays. New applies this
// before validating.
func (c Config) WithDefaults() Config {
	if c.SimulationDurationDays == 0 {
		c.SimulationDurationDays = 2 * c.LogRetentionDays
	}
	return c
}

// Validate checks every parameter against its declared range. The returned
// error wraps ErrInvalidConfig and names the offending field.
func (c Config) Validate() error {
	if c.LogsPerDay < 1 {
		return fmt.Errorf("%w: logs_per_day must be >= 1, got %d", ErrInvalidConfig, c.LogsPerDay)
	}
	if c.LogRetentionDays < 1 {
		return fmt.Errorf("%w: log_retention_days must be >= 1, got %d", ErrInvalidConfig, c.LogRetentionDays)
	}
	if c.SimulationDurationDays < 1 {
		return fmt.Errorf("%w: simulation_duration_days must be >= 1, got %d", ErrInvalidConfig, c.SimulationDurationDays)
	}
	if c.LogDeleteThresholdPercent < 0 || c.LogDeleteThresholdPercent > 100 {
		return fmt.Errorf("%w: log_delete_threshold_percent must be between 0 and 100, got %d", ErrInvalidConfig, c.LogDeleteThresholdPercent)
	}
	if c.MaxSwapIntervalDays < 1 {
		return fmt.Errorf("%w: max_swap_interval_days must be >= 1, got %d", ErrInvalidConfig, c.MaxSwapIntervalDays)
	}
	if c.MaxDeviationFraction < 0 || c.MaxDeviationFraction > 1 {
		return fmt.Errorf("%w: max_deviation_fraction must be between 0 and 1, got %f", ErrInvalidConfig, c.MaxDeviationFraction)
	}
	return nil
}
