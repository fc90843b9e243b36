package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestManualClock verifies the manual clock only moves when told to.
func TestManualClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	manual := NewManual(start)

	require.Equal(t, start, manual.Now())
	require.Equal(t, start, manual.Now())

	manual.Advance(250 * time.Millisecond)
	require.Equal(t, start.Add(250*time.Millisecond), manual.Now())

	manual.Set(start.Add(time.Hour))
	require.Equal(t, start.Add(time.Hour), manual.Now())
}

// TestSystemClock verifies the system clock produces non-decreasing readings.
func TestSystemClock(t *testing.T) {
	t.Parallel()

	var clk System

	first := clk.Now()
	second := clk.Now()

	require.False(t, second.Before(first))
}
