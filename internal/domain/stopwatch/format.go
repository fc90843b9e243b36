package stopwatch

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as a zero-padded HH:MM:SS string.
// Negative durations render as 00:00:00; hours grow past two digits rather
// than wrapping.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int64(d / time.Second)

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
