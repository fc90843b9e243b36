package stopwatch

import "time"

// FallbackThreshold is used for lap positions beyond the configured table.
const FallbackThreshold = 5 * time.Minute

// Schedule maps a lap's position in the ledger to its default alarm
// threshold.
type Schedule struct {
	// table holds per-position thresholds, indexed by zero-based lap
	// position.
	table []time.Duration
	// fallback applies to positions beyond the table.
	fallback time.Duration
}

// NewSchedule builds a schedule from an ordered threshold table. Non-positive
// table entries and a non-positive fallback are replaced with
// FallbackThreshold.
func NewSchedule(table []time.Duration, fallback time.Duration) *Schedule {
	if fallback <= 0 {
		fallback = FallbackThreshold
	}

	cleaned := make([]time.Duration, 0, len(table))
	for _, d := range table {
		if d <= 0 {
			d = fallback
		}

		cleaned = append(cleaned, d)
	}

	return &Schedule{
		table:    cleaned,
		fallback: fallback,
	}
}

// DefaultSchedule returns a schedule with an empty table, so every lap gets
// the fallback threshold.
func DefaultSchedule() *Schedule {
	return NewSchedule(nil, FallbackThreshold)
}

// ThresholdFor returns the default alarm threshold for a lap at the given
// zero-based position.
func (s *Schedule) ThresholdFor(position int) time.Duration {
	if position >= 0 && position < len(s.table) {
		return s.table[position]
	}

	return s.fallback
}
