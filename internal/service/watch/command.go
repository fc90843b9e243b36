package watch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/lap-timer/internal/clock"
	"github.com/oshokin/lap-timer/internal/config"
	"github.com/oshokin/lap-timer/internal/domain/stopwatch"
	"github.com/oshokin/lap-timer/internal/logger"
	"github.com/oshokin/lap-timer/internal/repository/ledger"
	"github.com/oshokin/lap-timer/internal/service/audio"
	"github.com/oshokin/lap-timer/internal/service/session"
)

// Options controls the interactive stopwatch process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// StateFile overrides the lap ledger path from config.
	StateFile string
	// TickInterval overrides the refresh cadence from config.
	TickInterval time.Duration
	// SoundCommand overrides the alarm sound command from config.
	SoundCommand []string
	// NoLock skips the single-instance check.
	NoLock bool

	// Input is the command stream, defaulting to stdin.
	Input io.Reader
	// Output is the display stream, defaulting to stdout.
	Output io.Writer
}

// Run starts the interactive stopwatch and blocks until the user quits or
// the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "lap-timer")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	applyOverrides(cfg, opts)

	if !opts.NoLock {
		if err = EnsureSingleInstance(ctx); err != nil {
			return err
		}
	}

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	display := NewConsoleDisplay(output)

	svc := session.NewService(ctx, session.Deps{
		Clock:        clock.System{},
		Repository:   ledger.NewFileRepository(cfg.StateFile),
		Player:       audio.FromCommand(cfg.SoundCommand),
		Display:      display,
		Schedule:     stopwatch.NewSchedule(cfg.LapThresholds, cfg.FallbackThreshold),
		TickInterval: cfg.TickInterval,
	})
	defer svc.Close()

	logger.InfoKV(ctx, "Stopwatch ready",
		"state_file", cfg.StateFile,
		"tick_interval", cfg.TickInterval.String())

	fmt.Fprintln(output, commandHelp)

	return commandLoop(ctx, svc, display, input, output)
}

// commandHelp lists the interactive commands.
const commandHelp = `commands: start | pause | lap | reset | status | arm <lap> | threshold <lap> <duration> | help | quit`

// commandLoop reads user commands line by line and maps them onto session
// operations until EOF, quit, or context cancellation.
func commandLoop(ctx context.Context, svc *session.Service, display *ConsoleDisplay, input io.Reader, output io.Writer) error {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			if quit := dispatch(ctx, svc, display, output, line); quit {
				return nil
			}
		}
	}
}

// dispatch executes a single command line. Returns true when the user quits.
func dispatch(ctx context.Context, svc *session.Service, display *ConsoleDisplay, output io.Writer, line string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "start", "resume":
		svc.Start(ctx)
	case "pause", "stop":
		svc.Pause(ctx)
	case "lap":
		svc.RecordLap(ctx)
	case "reset":
		svc.Reset(ctx)
	case "status":
		display.RenderTable(svc.Snapshot())
	case "arm":
		index, ok := parseLapNumber(fields, 2)
		if !ok {
			fmt.Fprintln(output, "usage: arm <lap>")

			return false
		}

		svc.ToggleArmed(ctx, index)
	case "threshold":
		index, ok := parseLapNumber(fields, 3)
		if !ok {
			fmt.Fprintln(output, "usage: threshold <lap> <duration>")

			return false
		}

		threshold, err := time.ParseDuration(fields[2])
		if err != nil {
			fmt.Fprintf(output, "invalid duration %q\n", fields[2])

			return false
		}

		svc.SetThreshold(ctx, index, threshold)
	case "help":
		fmt.Fprintln(output, commandHelp)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(output, "unknown command %q, try: help\n", fields[0])
	}

	return false
}

// parseLapNumber extracts the 1-based lap number argument and converts it to
// a ledger index. wantFields is the expected total field count.
func parseLapNumber(fields []string, wantFields int) (int, bool) {
	if len(fields) < wantFields {
		return 0, false
	}

	number, err := strconv.Atoi(fields[1])
	if err != nil || number < 1 {
		return 0, false
	}

	return number - 1, true
}

// applyOverrides layers command-line options over the loaded configuration.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.StateFile != "" {
		cfg.StateFile = opts.StateFile
	}

	if opts.TickInterval > 0 {
		cfg.TickInterval = opts.TickInterval
	}

	if len(opts.SoundCommand) > 0 {
		cfg.SoundCommand = opts.SoundCommand
	}
}
