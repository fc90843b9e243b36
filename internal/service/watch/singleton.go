package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/lap-timer/internal/logger"
)

// EnsureSingleInstance refuses to start when another lap-timer process is
// already running, since two sessions would fight over the same state file.
// Process table scan failures are advisory: the session still starts.
func EnsureSingleInstance(ctx context.Context) error {
	executable := filepath.Base(os.Args[0])

	processList, err := ps.Processes()
	if err != nil {
		logger.WarnKV(ctx, "Unable to scan process table, skipping single-instance check", "error", err)

		return nil
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != executable {
			continue
		}

		return fmt.Errorf("another %s instance is already running (pid %d); use --no-lock to override",
			executable, process.Pid())
	}

	return nil
}
