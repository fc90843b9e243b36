package stopwatch

import "time"

// Ledger is the ordered sequence of lap records. Insertion order is lap
// order; records are never reordered or removed except by Clear.
//
// Invariant: at most one lap is open (Closed == false) at any time, and the
// open lap is always the last record.
type Ledger struct {
	// laps holds the records in creation order.
	laps []*Lap
	// schedule supplies default alarm thresholds by lap position.
	schedule *Schedule
}

// NewLedger creates an empty ledger using the provided threshold schedule.
// A nil schedule falls back to DefaultSchedule.
func NewLedger(schedule *Schedule) *Ledger {
	if schedule == nil {
		schedule = DefaultSchedule()
	}

	return &Ledger{
		schedule: schedule,
	}
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.laps)
}

// Lap returns the record at the given index, or nil if out of range.
func (l *Ledger) Lap(index int) *Lap {
	if index < 0 || index >= len(l.laps) {
		return nil
	}

	return l.laps[index]
}

// Laps returns a deep copy of all records, oldest first.
func (l *Ledger) Laps() []*Lap {
	if len(l.laps) == 0 {
		return nil
	}

	cloned := make([]*Lap, 0, len(l.laps))
	for _, lap := range l.laps {
		cloned = append(cloned, lap.Clone())
	}

	return cloned
}

// ActiveIndex returns the index of the open lap. The second return is false
// when the ledger is empty.
func (l *Ledger) ActiveIndex() (int, bool) {
	if len(l.laps) == 0 {
		return 0, false
	}

	return len(l.laps) - 1, true
}

// EnsureFirstLap appends the initial lap if the ledger is empty. Invoked at
// stopwatch start.
func (l *Ledger) EnsureFirstLap(now time.Time, state *State) {
	if len(l.laps) > 0 {
		return
	}

	l.appendLap(now, state)
}

// RecordLap closes the open lap, freezing its elapsed time at this instant,
// and appends a new open record. Recording while paused still closes and
// opens laps; the new lap's timer advances only once the clock resumes.
//
// Returns the new lap's index. The second return is false when the stopwatch
// has never started and the ledger is empty, in which case nothing changes.
func (l *Ledger) RecordLap(now time.Time, state *State) (int, bool) {
	if len(l.laps) == 0 && !state.Started() {
		return 0, false
	}

	if index, ok := l.ActiveIndex(); ok {
		lap := l.laps[index]
		if !lap.Closed {
			lap.RecordedElapsed = l.LapElapsed(index, now, state)
			lap.Closed = true
			lap.Armed = false
			lap.Fired = false
		}
	}

	return l.appendLap(now, state), true
}

// LapElapsed returns the addressed lap's own elapsed time. Closed laps return
// the value frozen at closing time; the open lap is measured on the main
// stopwatch's timeline from its start offset, so a pause freezes it and a
// resume continues it without a jump. Never negative; zero for an invalid
// index.
func (l *Ledger) LapElapsed(index int, now time.Time, state *State) time.Duration {
	lap := l.Lap(index)
	if lap == nil {
		return 0
	}

	if lap.Closed {
		return clampElapsed(lap.RecordedElapsed)
	}

	return clampElapsed(state.Elapsed(now) - lap.StartOffset)
}

// UpdateThreshold sets the addressed lap's alarm threshold and clears its
// fired flag so the alarm is re-evaluated against the new value. Returns
// false for an invalid index.
func (l *Ledger) UpdateThreshold(index int, threshold time.Duration) bool {
	lap := l.Lap(index)
	if lap == nil {
		return false
	}

	lap.AlarmThreshold = threshold
	lap.Fired = false

	return true
}

// ToggleArmed flips the addressed lap's armed flag and clears its fired flag.
// Returns the new armed value; the second return is false for an invalid
// index.
func (l *Ledger) ToggleArmed(index int) (bool, bool) {
	lap := l.Lap(index)
	if lap == nil {
		return false, false
	}

	lap.Armed = !lap.Armed
	lap.Fired = false

	return lap.Armed, true
}

// Clear removes every record.
func (l *Ledger) Clear() {
	l.laps = nil
}

// ImportHistory appends previously saved records as closed history. Open
// flags are stripped so the single-open-lap invariant holds regardless of
// what was stored.
func (l *Ledger) ImportHistory(laps []*Lap) {
	for _, lap := range laps {
		if lap == nil {
			continue
		}

		imported := lap.Clone()
		imported.Closed = true
		imported.Armed = false
		imported.Fired = false

		l.laps = append(l.laps, imported)
	}
}

// appendLap adds a new open record anchored at the stopwatch's current
// elapsed time, with the schedule's threshold for its position.
func (l *Ledger) appendLap(now time.Time, state *State) int {
	lap := &Lap{
		CreatedAt:      now,
		StartOffset:    state.Elapsed(now),
		AlarmThreshold: l.schedule.ThresholdFor(len(l.laps)),
		Armed:          true,
	}

	l.laps = append(l.laps, lap)

	return len(l.laps) - 1
}
