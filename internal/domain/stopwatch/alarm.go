package stopwatch

import "time"

// EvaluateAlarm decides whether the open lap's alarm should fire at this
// instant. Only the open lap is ever evaluated; closed laps are frozen and
// never re-trigger. The alarm fires when the lap is armed, has not fired in
// its current arm/threshold configuration, and its elapsed time has reached
// the threshold (ties fire).
//
// The returned index is valid only when fire is true. The caller must mark
// the lap fired and invoke the audio side effect exactly once.
func EvaluateAlarm(ledger *Ledger, state *State, now time.Time) (int, bool) {
	index, ok := ledger.ActiveIndex()
	if !ok {
		return 0, false
	}

	lap := ledger.Lap(index)
	if lap.Closed || !lap.Armed || lap.Fired {
		return 0, false
	}

	if ledger.LapElapsed(index, now, state) >= lap.AlarmThreshold {
		return index, true
	}

	return 0, false
}
