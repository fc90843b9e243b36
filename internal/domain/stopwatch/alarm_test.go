package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestEvaluateAlarm_FiresOnceAtThreshold replays the reference scenario:
// start at t=0 with a 5 minute threshold, the alarm must not fire before
// 5m00s and must fire exactly once by 5m20s.
func TestEvaluateAlarm_FiresOnceAtThreshold(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(DefaultSchedule())

	require.True(t, s.Start(at(0)))
	l.EnsureFirstLap(at(0), &s)

	fired := 0

	for offset := time.Duration(0); offset <= 320*time.Second; offset += 100 * time.Millisecond {
		now := at(offset)

		index, fire := EvaluateAlarm(l, &s, now)
		if fire {
			require.GreaterOrEqual(t, offset, 300*time.Second)
			require.Equal(t, 0, index)

			l.Lap(index).Fired = true
			fired++
		}
	}

	require.Equal(t, 1, fired)
}

// TestEvaluateAlarm_ThresholdTieFires verifies the >= comparison: reaching
// the threshold exactly fires, one tick short does not.
func TestEvaluateAlarm_ThresholdTieFires(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(NewSchedule([]time.Duration{time.Second}, 0))

	require.True(t, s.Start(at(0)))
	l.EnsureFirstLap(at(0), &s)

	_, fire := EvaluateAlarm(l, &s, at(900*time.Millisecond))
	require.False(t, fire)

	index, fire := EvaluateAlarm(l, &s, at(time.Second))
	require.True(t, fire)
	require.Equal(t, 0, index)
}

// TestEvaluateAlarm_RespectsArmedAndFired verifies disarmed and
// already-fired laps do not fire, and that re-arming or editing the
// threshold re-enables evaluation.
func TestEvaluateAlarm_RespectsArmedAndFired(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(NewSchedule([]time.Duration{time.Second}, 0))

	require.True(t, s.Start(at(0)))
	l.EnsureFirstLap(at(0), &s)

	now := at(10 * time.Second)

	// Fired blocks re-triggering.
	l.Lap(0).Fired = true

	_, fire := EvaluateAlarm(l, &s, now)
	require.False(t, fire)

	// A threshold edit clears the flag and re-evaluates next tick.
	require.True(t, l.UpdateThreshold(0, 2*time.Second))

	_, fire = EvaluateAlarm(l, &s, now)
	require.True(t, fire)

	// Disarming blocks evaluation entirely.
	l.Lap(0).Fired = true

	armed, ok := l.ToggleArmed(0)
	require.True(t, ok)
	require.False(t, armed)

	_, fire = EvaluateAlarm(l, &s, now)
	require.False(t, fire)

	// Re-arming cleared fired, so the alarm is live again.
	armed, ok = l.ToggleArmed(0)
	require.True(t, ok)
	require.True(t, armed)

	_, fire = EvaluateAlarm(l, &s, now)
	require.True(t, fire)
}

// TestEvaluateAlarm_OnlyOpenLapEvaluated verifies closed laps never trigger,
// whatever their flags say, and a new lap starts its own alarm cycle.
func TestEvaluateAlarm_OnlyOpenLapEvaluated(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(NewSchedule([]time.Duration{time.Second, time.Hour}, 0))

	require.True(t, s.Start(at(0)))
	l.EnsureFirstLap(at(0), &s)

	// Close the first lap long past its threshold; force its flags hot.
	_, ok := l.RecordLap(at(10*time.Second), &s)
	require.True(t, ok)

	l.Lap(0).Armed = true
	l.Lap(0).Fired = false

	index, fire := EvaluateAlarm(l, &s, at(time.Minute))
	require.False(t, fire)
	require.Equal(t, 0, index)

	// The open lap fires on its own threshold only.
	require.True(t, l.UpdateThreshold(1, 30*time.Second))

	index, fire = EvaluateAlarm(l, &s, at(time.Minute))
	require.True(t, fire)
	require.Equal(t, 1, index)
}

// TestEvaluateAlarm_EmptyLedger verifies evaluation of an empty ledger is a
// no-op.
func TestEvaluateAlarm_EmptyLedger(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(nil)

	_, fire := EvaluateAlarm(l, &s, at(0))
	require.False(t, fire)
}

// TestEvaluateAlarm_ZeroThreshold verifies a zero threshold fires on the
// first evaluation after lap creation.
func TestEvaluateAlarm_ZeroThreshold(t *testing.T) {
	t.Parallel()

	var s State

	l := NewLedger(nil)

	require.True(t, s.Start(at(0)))
	l.EnsureFirstLap(at(0), &s)
	require.True(t, l.UpdateThreshold(0, 0))

	index, fire := EvaluateAlarm(l, &s, at(0))
	require.True(t, fire)
	require.Equal(t, 0, index)
}
