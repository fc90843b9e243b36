package stopwatch

import "time"

// LapStatus is the display state of a lap's alarm lifecycle.
type LapStatus string

const (
	// LapPending means the lap is active and its alarm has not sounded.
	LapPending LapStatus = "pending"
	// LapTriggered means the alarm has sounded for the active lap.
	LapTriggered LapStatus = "triggered"
	// LapDone means the lap has been closed by a subsequent lap. Terminal.
	LapDone LapStatus = "done"
)

// Lap is a single record in the ledger.
type Lap struct {
	// CreatedAt is the wall-clock instant the lap began.
	CreatedAt time.Time
	// StartOffset is the main stopwatch's elapsed time at the moment the lap
	// was created. Lap elapsed is measured from this point on the stopwatch
	// timeline, not from wall clock, so pauses freeze all laps together.
	StartOffset time.Duration
	// RecordedElapsed is the lap's own elapsed time, frozen when the lap is
	// closed. Meaningless while the lap is still active.
	RecordedElapsed time.Duration
	// AlarmThreshold is the lap elapsed after which the alarm fires.
	AlarmThreshold time.Duration
	// Armed reports whether the alarm is enabled for this lap.
	Armed bool
	// Fired is set once the alarm has sounded and blocks re-triggering until
	// the threshold is edited or the alarm is re-armed.
	Fired bool
	// Closed is set once the lap is superseded by a subsequent lap.
	Closed bool
}

// Clone returns a copy of the lap.
func (l *Lap) Clone() *Lap {
	if l == nil {
		return nil
	}

	cloned := *l

	return &cloned
}

// Status derives the lap's lifecycle state.
func (l *Lap) Status() LapStatus {
	switch {
	case l.Closed:
		return LapDone
	case l.Fired:
		return LapTriggered
	default:
		return LapPending
	}
}
