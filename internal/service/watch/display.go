package watch

import (
	"fmt"
	"io"
	"sync"

	"github.com/oshokin/lap-timer/internal/service/session"
)

// ConsoleDisplay renders session snapshots to a terminal. The tick-driven
// one-line view only redraws when its text changes, so the 100ms cadence does
// not flood the output.
type ConsoleDisplay struct {
	// out is the render target.
	out io.Writer
	// mu serializes rendering from the tick loop and the command loop.
	mu sync.Mutex
	// lastLine is the most recently drawn one-line view.
	lastLine string
}

// NewConsoleDisplay creates a display writing to the provided stream.
func NewConsoleDisplay(out io.Writer) *ConsoleDisplay {
	return &ConsoleDisplay{
		out: out,
	}
}

// Render draws the compact one-line view: main elapsed plus the open lap's
// elapsed and status.
func (d *ConsoleDisplay) Render(snapshot session.Snapshot) {
	line := formatLine(snapshot)

	d.mu.Lock()
	defer d.mu.Unlock()

	if line == d.lastLine {
		return
	}

	d.lastLine = line
	fmt.Fprintf(d.out, "\r%s", line)
}

// RenderTable draws the full ledger, one lap per line.
func (d *ConsoleDisplay) RenderTable(snapshot session.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := "paused"
	if snapshot.Running {
		state = "running"
	}

	fmt.Fprintf(d.out, "\ntotal %s (%s)\n", snapshot.ElapsedText, state)

	for _, lap := range snapshot.Laps {
		marker := " "
		if lap.Index == snapshot.ActiveIndex {
			marker = "*"
		}

		armed := "off"
		if lap.Armed {
			armed = "on"
		}

		fmt.Fprintf(d.out, "%s lap %d  %s / %s  [%s, alarm %s]\n",
			marker, lap.Index+1, lap.ElapsedText, lap.ThresholdText, lap.Status, armed)
	}

	d.lastLine = ""
}

// formatLine builds the compact one-line view.
func formatLine(snapshot session.Snapshot) string {
	if snapshot.ActiveIndex < 0 {
		return snapshot.ElapsedText
	}

	lap := snapshot.Laps[snapshot.ActiveIndex]

	return fmt.Sprintf("%s  lap %d %s [%s]",
		snapshot.ElapsedText, lap.Index+1, lap.ElapsedText, lap.Status)
}
