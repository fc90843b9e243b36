package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFormatElapsed verifies zero padding, hour carry-over and negative
// clamping.
func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		0:                                  "00:00:00",
		999 * time.Millisecond:             "00:00:00",
		time.Second:                        "00:00:01",
		61 * time.Second:                   "00:01:01",
		time.Hour + 2*time.Minute + 3*time.Second: "01:02:03",
		25 * time.Hour:                     "25:00:00",
		-time.Minute:                       "00:00:00",
	}

	for d, want := range cases {
		require.Equal(t, want, FormatElapsed(d))
	}
}

// TestSchedule_Fallbacks verifies the threshold table falls back beyond its
// length and sanitizes non-positive entries.
func TestSchedule_Fallbacks(t *testing.T) {
	t.Parallel()

	s := NewSchedule([]time.Duration{time.Minute, 0}, 0)

	require.Equal(t, time.Minute, s.ThresholdFor(0))
	require.Equal(t, FallbackThreshold, s.ThresholdFor(1))
	require.Equal(t, FallbackThreshold, s.ThresholdFor(2))
	require.Equal(t, FallbackThreshold, s.ThresholdFor(-1))

	require.Equal(t, FallbackThreshold, DefaultSchedule().ThresholdFor(0))
}

// TestLapStatus verifies status derivation from the lap flags.
func TestLapStatus(t *testing.T) {
	t.Parallel()

	lap := &Lap{Armed: true}
	require.Equal(t, LapPending, lap.Status())

	lap.Fired = true
	require.Equal(t, LapTriggered, lap.Status())

	lap.Closed = true
	require.Equal(t, LapDone, lap.Status())

	cloned := lap.Clone()
	require.Equal(t, lap, cloned)
	require.NotSame(t, lap, cloned)
	require.Nil(t, (*Lap)(nil).Clone())
}
