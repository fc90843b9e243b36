package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// epoch is an arbitrary fixed instant used as t=0 across the domain tests.
var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// at returns epoch shifted by the offset, so test instants read as offsets.
func at(offset time.Duration) time.Time {
	return epoch.Add(offset)
}

// TestState_StartPauseElapsed verifies elapsed derivation while running and
// while paused.
func TestState_StartPauseElapsed(t *testing.T) {
	t.Parallel()

	var s State

	require.False(t, s.Running())
	require.False(t, s.Started())
	require.Equal(t, time.Duration(0), s.Elapsed(at(0)))

	require.True(t, s.Start(at(0)))
	require.True(t, s.Running())
	require.True(t, s.Started())
	require.Equal(t, 1500*time.Millisecond, s.Elapsed(at(1500*time.Millisecond)))

	require.True(t, s.Pause(at(2*time.Second)))
	require.False(t, s.Running())

	// Frozen while paused, regardless of the clock reading.
	require.Equal(t, 2*time.Second, s.Elapsed(at(time.Minute)))
	require.True(t, s.Started())
}

// TestState_ContinuityAcrossPauseResume checks the resume boundary: a pause
// at t=1s followed by a 10s gap must resume at 1s, not 11s.
func TestState_ContinuityAcrossPauseResume(t *testing.T) {
	t.Parallel()

	var s State

	require.True(t, s.Start(at(0)))
	require.True(t, s.Pause(at(time.Second)))

	// Remain paused for 10 seconds.
	require.True(t, s.Start(at(11*time.Second)))
	require.Equal(t, time.Second, s.Elapsed(at(11*time.Second)))

	// And time keeps flowing from there.
	require.Equal(t, 4*time.Second, s.Elapsed(at(14*time.Second)))
}

// TestState_RepeatedTransitionsAreNoOps verifies Start while running and
// Pause while paused change nothing.
func TestState_RepeatedTransitionsAreNoOps(t *testing.T) {
	t.Parallel()

	var s State

	require.False(t, s.Pause(at(0)))
	require.True(t, s.Start(at(0)))
	require.False(t, s.Start(at(5*time.Second)))
	require.Equal(t, 5*time.Second, s.Elapsed(at(5*time.Second)))

	require.True(t, s.Pause(at(6*time.Second)))
	require.False(t, s.Pause(at(9*time.Second)))
	require.Equal(t, 6*time.Second, s.Elapsed(at(9*time.Second)))
}

// TestState_MonotonicWhileRunning checks elapsed never decreases for
// advancing readings within a run segment.
func TestState_MonotonicWhileRunning(t *testing.T) {
	t.Parallel()

	var s State

	require.True(t, s.Start(at(0)))

	previous := time.Duration(-1)
	for offset := time.Duration(0); offset <= time.Second; offset += 100 * time.Millisecond {
		elapsed := s.Elapsed(at(offset))
		require.GreaterOrEqual(t, elapsed, previous)

		previous = elapsed
	}
}

// TestState_Reset verifies reset returns to the never-started condition.
func TestState_Reset(t *testing.T) {
	t.Parallel()

	var s State

	require.True(t, s.Start(at(0)))
	require.True(t, s.Pause(at(3*time.Second)))

	s.Reset()

	require.False(t, s.Running())
	require.False(t, s.Started())
	require.Equal(t, time.Duration(0), s.Elapsed(at(time.Hour)))

	_, anchored := s.StartEpoch()
	require.False(t, anchored)
}

// TestState_ElapsedClampsNegative verifies a clock reading before the epoch
// yields zero, not a negative duration.
func TestState_ElapsedClampsNegative(t *testing.T) {
	t.Parallel()

	var s State

	require.True(t, s.Start(at(10 * time.Second)))
	require.Equal(t, time.Duration(0), s.Elapsed(at(5*time.Second)))
}
