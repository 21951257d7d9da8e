package sim

import (
	"math/rand/v2"
	"time"
)

// firstDay is the day number of the first simulated day. The initial
// lastSwapDay equals it, which makes the Day1 trigger mutually exclusive
// with the other two on the first day.
const firstDay = 1

// Option configures a Sim beyond its Config.
type Option func(*Sim)

// WithRand injects the random source used for the daily load deviation.
// Inject a seeded source for reproducible noisy runs.
func WithRand(r *rand.Rand) Option {
	return func(s *Sim) { s.rng = r }
}

// WithSeed is shorthand for WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithTiming attaches a wall-clock Elapsed measurement to every DayResult.
// Diagnostic only; the simulated values are unaffected.
func WithTiming() Option {
	return func(s *Sim) { s.timing = true }
}

// Sim is a single simulation run: a one-shot, non-restartable sequence of
// daily results. Create one with New and drain it with Next or Run.
// A Sim is not safe for concurrent use, and does not need to be: days are
// inherently serial.
type Sim struct {
	cfg    Config
	rng    *rand.Rand
	timing bool

	active   *table
	inactive *table

	day              int
	lastSwapDay      int
	nextSwapDeadline int
}

// New validates cfg (after applying the duration default) and returns a
// fresh simulation positioned before day 1. The returned error wraps
// ErrInvalidConfig when a parameter is out of range.
func New(cfg Config, opts ...Option) (*Sim, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:              cfg,
		active:           &table{},
		inactive:         &table{},
		lastSwapDay:      firstDay,
		nextSwapDeadline: firstDay + cfg.MaxSwapIntervalDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s, nil
}

// Config returns the effective configuration, with defaults applied.
func (s *Sim) Config() Config { return s.cfg }

// Next advances the simulation by one day and returns its result. The
// second return value is false once the configured duration is exhausted.
// No look-ahead happens: ceasing to call Next stops all work.
func (s *Sim) Next() (DayResult, bool) {
	if s.day >= s.cfg.SimulationDurationDays {
		return DayResult{}, false
	}
	s.day++

	var start time.Time
	if s.timing {
		start = time.Now()
	}
	res := s.step()
	if s.timing {
		elapsed := time.Since(start)
		res.Elapsed = &elapsed
	}
	return res, true
}

// Run drains the simulation and returns all remaining daily results.
func (s *Sim) Run() []DayResult {
	results := make([]DayResult, 0, s.cfg.SimulationDurationDays-s.day)
	for {
		res, ok := s.Next()
		if !ok {
			return results
		}
		results = append(results, res)
	}
}

// step executes the per-day state transition for the current day.
func (s *Sim) step() DayResult {
	day := s.day

	// Load generation. The deviation magnitude is drawn uniformly in
	// [0, floor(LogsPerDay*MaxDeviationFraction)] and negated when odd.
	// The sign therefore correlates with magnitude parity rather than an
	// independent coin flip; that matches the scheme being modeled and
	// is kept for output compatibility.
	logsToday := s.cfg.LogsPerDay
	if s.cfg.MaxDeviationFraction > 0 {
		span := int(float64(s.cfg.LogsPerDay) * s.cfg.MaxDeviationFraction)
		deviation := s.rng.IntN(span + 1)
		if deviation%2 == 1 {
			deviation = -deviation
		}
		logsToday += deviation
	}
	s.active.appendN(day, logsToday)

	// Expiration accounting. A record is expired iff its day is strictly
	// older than the cutoff. Percent-not-expired rounds up, and an empty
	// inactive table counts as fully unexpired.
	cutoff := day - s.cfg.LogRetentionDays
	percentNotExpired := 100
	if n := s.inactive.Len(); n > 0 {
		notExpired := n - s.inactive.countOlderThan(cutoff)
		percentNotExpired = (100*notExpired + n - 1) / n
	}

	// Swap trigger evaluation, in priority order for reason attribution.
	trigger := TriggerNone
	switch {
	case day == firstDay:
		trigger = TriggerDay1
	case percentNotExpired <= s.cfg.LogDeleteThresholdPercent:
		trigger = TriggerDeleteThreshold
	case day-s.lastSwapDay >= s.cfg.MaxSwapIntervalDays:
		trigger = TriggerMaxInterval
	}

	// Swap execution. The max-interval trigger runs a second pass so
	// expiration filtering compounds twice in the same tick. Each pass
	// copies the surviving inactive records into the new active table
	// and rotates the old active table into the inactive slot.
	passes, rowsCopied := 0, 0
	if trigger != TriggerNone {
		passes = 1
		if trigger == TriggerMaxInterval {
			passes = 2
		}
		for i := 0; i < passes; i++ {
			kept := s.inactive.newerThan(cutoff)
			rowsCopied += kept.Len()
			s.inactive, s.active = s.active, kept
		}
		s.lastSwapDay = day
		s.nextSwapDeadline = day + s.cfg.MaxSwapIntervalDays
	}

	res := DayResult{
		Day:               day,
		ActiveTableSize:   s.active.Len(),
		InactiveTableSize: s.inactive.Len(),
		TotalRecords:      s.active.Len() + s.inactive.Len(),
		PercentNotExpired: percentNotExpired,
		TableSwapOccurred: trigger != TriggerNone,
		TableSwapTrigger:  trigger,
		TableSwapCount:    passes,
		RowsCopied:        rowsCopied,
		NextSwapDeadline:  s.nextSwapDeadline,
	}
	if oldest, ok := s.active.front(); ok {
		res.OldestActiveAgeDays = day - oldest
	}
	if oldest, ok := s.inactive.front(); ok {
		res.OldestInactiveAgeDays = day - oldest
	}
	if newest, ok := s.inactive.back(); ok {
		res.NewestInactiveAgeDays = day - newest
	}
	return res
}
