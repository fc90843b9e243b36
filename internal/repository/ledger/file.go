package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/lap-timer/internal/config"
	"github.com/oshokin/lap-timer/internal/domain/stopwatch"
)

// Repository defines persistence operations for the lap ledger.
type Repository interface {
	Load(ctx context.Context) ([]*stopwatch.Lap, error)
	Save(ctx context.Context, laps []*stopwatch.Lap) error
	Clear(ctx context.Context) error
}

// FileRepository persists the lap ledger to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// ErrNotFound is returned when the state file does not exist yet.
var ErrNotFound = errors.New("ledger not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// lapRecord is the on-disk shape of a single lap. Durations are stored in
// milliseconds to keep the file readable and editable by hand.
type lapRecord struct {
	// CreatedAt is the wall-clock instant the lap began.
	CreatedAt time.Time `json:"created_at"`
	// RecordedElapsedMs is the lap's frozen elapsed time in milliseconds.
	RecordedElapsedMs int64 `json:"recorded_elapsed_ms"`
	// AlarmThresholdMs is the configured alarm threshold in milliseconds.
	AlarmThresholdMs int64 `json:"alarm_threshold_ms"`
	// Fired reports whether the alarm sounded for this lap.
	Fired bool `json:"fired"`
	// Armed reports whether the alarm was enabled for this lap.
	Armed bool `json:"armed"`
}

// Load reads the saved ledger from disk.
func (r *FileRepository) Load(_ context.Context) ([]*stopwatch.Lap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var records []lapRecord
	if err = json.Unmarshal(contents, &records); err != nil {
		return nil, fmt.Errorf("decode ledger file: %w", err)
	}

	laps := make([]*stopwatch.Lap, 0, len(records))
	for _, record := range records {
		laps = append(laps, fromRecord(record))
	}

	return laps, nil
}

// Save writes the ledger to disk, replacing any previous contents.
func (r *FileRepository) Save(_ context.Context, laps []*stopwatch.Lap) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]lapRecord, 0, len(laps))
	for _, lap := range laps {
		if lap == nil {
			continue
		}

		records = append(records, toRecord(lap))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}

	return nil
}

// Clear removes the state file. A missing file is not an error.
func (r *FileRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove ledger file: %w", err)
	}

	return nil
}

// fromRecord converts the on-disk shape into the domain Lap model.
func fromRecord(record lapRecord) *stopwatch.Lap {
	return &stopwatch.Lap{
		CreatedAt:       record.CreatedAt,
		RecordedElapsed: time.Duration(record.RecordedElapsedMs) * time.Millisecond,
		AlarmThreshold:  time.Duration(record.AlarmThresholdMs) * time.Millisecond,
		Fired:           record.Fired,
		Armed:           record.Armed,
	}
}

// toRecord converts a domain Lap into its on-disk shape.
func toRecord(lap *stopwatch.Lap) lapRecord {
	return lapRecord{
		CreatedAt:         lap.CreatedAt,
		RecordedElapsedMs: lap.RecordedElapsed.Milliseconds(),
		AlarmThresholdMs:  lap.AlarmThreshold.Milliseconds(),
		Fired:             lap.Fired,
		Armed:             lap.Armed,
	}
}
