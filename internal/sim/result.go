package sim

import "time"

// Trigger identifies why a table swap occurred on a given day.
type Trigger string

// Trigger values, in evaluation priority order. When several conditions
// hold at once the first matching one is reported.
const (
	// TriggerNone means no swap occurred.
	TriggerNone Trigger = ""

	// TriggerDay1 is the forced swap on the very first simulated day.
	TriggerDay1 Trigger = "Day1"

	// TriggerDeleteThreshold fires when the percent of not-expired
	// records in the inactive table drops to or below the configured
	// delete threshold.
	TriggerDeleteThreshold Trigger = "LogDeleteThreshold"

	// TriggerMaxInterval fires when the configured maximum number of
	// days since the last swap has elapsed. It is the only trigger that
	// performs two swap passes.
	TriggerMaxInterval Trigger = "ExpiredLogsMaximumLifetimeInDays"
)

// DayResult is the per-day output record of the simulation. One is
// produced for every simulated day, in day order.
type DayResult struct {
	// Day is the simulated day number, starting at 1.
	Day int `json:"day"`

	// ActiveTableSize and InactiveTableSize are the record counts after
	// the day's writes and any swap have been applied.
	ActiveTableSize   int `json:"active_table_size"`
	InactiveTableSize int `json:"inactive_table_size"`

	// TotalRecords is the sum of both table sizes.
	TotalRecords int `json:"total_records"`

	// PercentNotExpired is the ceiling percentage of inactive-table
	// records not yet past retention, evaluated before any swap. 100
	// while the inactive table is empty.
	PercentNotExpired int `json:"percent_not_expired"`

	// TableSwapOccurred reports whether a swap ran today, and
	// TableSwapTrigger which condition caused it.
	TableSwapOccurred bool    `json:"table_swap_occurred"`
	TableSwapTrigger  Trigger `json:"table_swap_trigger,omitempty"`

	// TableSwapCount is the number of swap passes performed: 2 for the
	// max-interval trigger, 1 for the others, 0 when no swap ran.
	TableSwapCount int `json:"table_swap_count"`

	// RowsCopied is the total number of records copied into the new
	// active table across all of today's swap passes.
	RowsCopied int `json:"rows_copied"`

	// NextSwapDeadline is the day by which the max-interval trigger will
	// force the next swap.
	NextSwapDeadline int `json:"next_swap_deadline"`

	// Ages in days of the boundary records, 0 when the table is empty.
	OldestActiveAgeDays   int `json:"oldest_active_age_days"`
	OldestInactiveAgeDays int `json:"oldest_inactive_age_days"`
	NewestInactiveAgeDays int `json:"newest_inactive_age_days"`

	// Elapsed is the wall-clock time spent computing this day. Only set
	// when timing was requested; purely informational and never affects
	// the simulated values.
	Elapsed *time.Duration `json:"elapsed,omitempty"`
}
