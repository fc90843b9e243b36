package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the stopwatch runtime settings.
type Config struct {
	// StateFile is the path to the JSON file storing the lap ledger.
	StateFile string `yaml:"state_file"`
	// TickInterval is the cadence of the display/alarm refresh loop.
	TickInterval time.Duration `yaml:"tick_interval"`
	// LapThresholds is the ordered default alarm threshold table, indexed by
	// lap position. Laps beyond the table get FallbackThreshold.
	LapThresholds []time.Duration `yaml:"lap_thresholds"`
	// FallbackThreshold applies to lap positions beyond LapThresholds.
	FallbackThreshold time.Duration `yaml:"fallback_threshold"`
	// SoundCommand is the program (and arguments) executed to sound the
	// alarm, e.g. ["paplay", "/usr/share/sounds/alarm.wav"]. Empty means the
	// alarm is logged only.
	SoundCommand []string `yaml:"sound_command"`
}

const (
	// DefaultConfigFilename is the default filename for runtime settings.
	DefaultConfigFilename = "lap-timer-settings.yaml"

	// DefaultStateFilename is the default filename for the lap ledger JSON.
	DefaultStateFilename = "lap-timer-laps.json"

	// DefaultTickInterval is the default refresh cadence. Coarse on purpose:
	// a tradeoff between display smoothness and CPU cost.
	DefaultTickInterval = 100 * time.Millisecond

	// DefaultFallbackThreshold is the default per-lap alarm threshold.
	DefaultFallbackThreshold = 5 * time.Minute

	// DefaultFilePermissions is the default file permission for config and
	// state files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration with every field at its default value.
func Default() *Config {
	return &Config{
		StateFile:         DefaultStateFilename,
		TickInterval:      DefaultTickInterval,
		FallbackThreshold: DefaultFallbackThreshold,
	}
}

// Load reads configuration from the provided path. A missing file is not an
// error: the defaults apply so the timer works on first run without any
// setup.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	Validate(&cfg)

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	Validate(cfg)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for missing or nonsensical values. Every field has
// a usable default, so validation never fails.
func Validate(cfg *Config) {
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.FallbackThreshold <= 0 {
		cfg.FallbackThreshold = DefaultFallbackThreshold
	}

	for i, d := range cfg.LapThresholds {
		if d <= 0 {
			cfg.LapThresholds[i] = cfg.FallbackThreshold
		}
	}
}
