package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/lap-timer/internal/config"
	"github.com/oshokin/lap-timer/internal/logger"
	"github.com/oshokin/lap-timer/internal/service/watch"
	"github.com/oshokin/lap-timer/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the lap ledger is persisted.
	stateFile string
	// tickInterval overrides the display/alarm refresh cadence.
	tickInterval time.Duration
	// soundCommand is the program and arguments used to sound the alarm.
	soundCommand []string
	// logLevel sets the minimum log level.
	logLevel string
	// noLock skips the single-instance check.
	noLock bool

	// rootCmd represents the base command running the interactive stopwatch.
	rootCmd = &cobra.Command{
		Use:   "lap-timer",
		Short: "Interactive stopwatch with per-lap alarms.",
		Long: `Runs an interactive stopwatch with pause/resume, manual lap recording and a
per-lap alarm that fires once a lap's elapsed time crosses its threshold.

Commands are read from stdin: start, pause, lap, reset, status, arm <lap>,
threshold <lap> <duration>, quit. Lap history is persisted to a JSON file and
re-imported on the next run; a missing or unreadable file just starts empty.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &watch.Options{
				ConfigPath:   configPath,
				StateFile:    stateFile,
				TickInterval: tickInterval,
				SoundCommand: soundCommand,
				NoLock:       noLock,
			}

			return watch.Run(ctx, options)
		},
	}
)

// Execute runs the lap-timer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to persist lap history")
	rootCmd.Flags().DurationVarP(&tickInterval, "tick-interval", "t", 0, "display/alarm refresh cadence")
	rootCmd.Flags().StringSliceVar(&soundCommand, "sound", nil, "alarm sound command and arguments")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug..fatal)")
	rootCmd.Flags().BoolVar(&noLock, "no-lock", false, "allow running alongside another lap-timer instance")
}
