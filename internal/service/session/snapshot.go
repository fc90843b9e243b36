package session

import (
	"time"

	"github.com/oshokin/lap-timer/internal/domain/stopwatch"
)

// LapView is the display projection of a single lap.
type LapView struct {
	// Index is the lap's zero-based position in the ledger.
	Index int
	// Status is the lap's alarm lifecycle state.
	Status stopwatch.LapStatus
	// Elapsed is the lap's own elapsed time.
	Elapsed time.Duration
	// ElapsedText is Elapsed formatted as HH:MM:SS.
	ElapsedText string
	// Threshold is the lap's alarm threshold.
	Threshold time.Duration
	// ThresholdText is Threshold formatted as HH:MM:SS.
	ThresholdText string
	// Armed reports whether the lap's alarm is enabled.
	Armed bool
}

// Snapshot is everything the display surface needs for one refresh.
type Snapshot struct {
	// Running reports whether the main stopwatch is running.
	Running bool
	// Elapsed is the main stopwatch's elapsed time.
	Elapsed time.Duration
	// ElapsedText is Elapsed formatted as HH:MM:SS.
	ElapsedText string
	// Laps lists every lap, oldest first.
	Laps []LapView
	// ActiveIndex is the open lap's index, -1 when the ledger is empty.
	ActiveIndex int
}

// Display receives snapshots from the session. The session owns no
// rendering; implementations decide how (and whether) to draw them.
type Display interface {
	Render(snapshot Snapshot)
}
