// Package sim models the lifecycle of a two-table log-storage scheme in
// which a server writes log records into an "active" table and reclaims
// expired records by periodically swapping the active and inactive tables
// instead of deleting rows individually.
//
// The simulation advances one day at a time. Each day it applies new
// writes (with an optional bounded random deviation), evaluates the swap
// triggers against the inactive table, performs the swap when one fires,
// and emits a DayResult with the table sizes, swap accounting, and record
// ages an operator needs for capacity planning. Rows copied at swap time
// are the dominant cost driver of the real scheme, so the engine tracks
// them per day.
//
// Days are strictly sequential: each day's state depends on the previous
// day's output. The engine does no I/O and holds no shared state; every
// Sim instance is independent. With MaxDeviationFraction set to zero a run
// is fully deterministic, and the random source is injectable via WithRand
// or WithSeed for reproducible noisy runs.
//
// Usage:
//
//	s, err := sim.New(sim.Config{
//	    LogsPerDay:                10,
//	    LogRetentionDays:          30,
//	    SimulationDurationDays:    90,
//	    LogDeleteThresholdPercent: 20,
//	    MaxSwapIntervalDays:       7,
//	})
//	if err != nil { ... }
//	for {
//	    res, ok := s.Next()
//	    if !ok {
//	        break
//	    }
//	    // consume res
//	}
package sim
