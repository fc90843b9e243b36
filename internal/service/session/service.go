package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/lap-timer/internal/clock"
	"github.com/oshokin/lap-timer/internal/config"
	"github.com/oshokin/lap-timer/internal/domain/stopwatch"
	"github.com/oshokin/lap-timer/internal/logger"
	"github.com/oshokin/lap-timer/internal/repository/ledger"
	"github.com/oshokin/lap-timer/internal/service/audio"
)

// Deps carries the collaborators a Service is built from. Clock is required;
// every other field has a working zero-value substitute.
type Deps struct {
	// Clock supplies wall-clock readings.
	Clock clock.Clock
	// Repository persists the lap ledger. Nil disables persistence.
	Repository ledger.Repository
	// Player sounds the alarm. Nil defaults to the silent player.
	Player audio.Player
	// Display receives refresh snapshots. Nil disables rendering.
	Display Display
	// Schedule supplies default lap thresholds. Nil uses the built-in
	// fallback for every lap.
	Schedule *stopwatch.Schedule
	// TickInterval is the refresh cadence. Non-positive values use the
	// configured default.
	TickInterval time.Duration
}

// Service owns the single stopwatch/ledger pair of a session and serializes
// every mutation behind one mutex. The tick loop and the user-action surface
// are the only callers; each takes one wall-clock reading per critical
// section so a single evaluation never sees skewed time.
type Service struct {
	// clk supplies wall-clock readings.
	clk clock.Clock
	// repo persists the ledger, best-effort. May be nil.
	repo ledger.Repository
	// player sounds the alarm, best-effort.
	player audio.Player
	// display receives refresh snapshots. May be nil.
	display Display
	// tickInterval is the refresh cadence.
	tickInterval time.Duration

	// mu guards state, laps and stopTick.
	mu sync.Mutex
	// state is the main stopwatch clock state.
	state *stopwatch.State
	// laps is the lap ledger.
	laps *stopwatch.Ledger
	// stopTick cancels the tick loop; non-nil exactly while ticking.
	stopTick chan struct{}
}

// NewService builds a session and imports any previously saved lap history.
// Loading is advisory: a missing or unreadable state file leaves the ledger
// empty and never fails session creation.
func NewService(ctx context.Context, deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}

	if deps.Player == nil {
		deps.Player = audio.Nop{}
	}

	if deps.TickInterval <= 0 {
		deps.TickInterval = config.DefaultTickInterval
	}

	s := &Service{
		clk:          deps.Clock,
		repo:         deps.Repository,
		player:       deps.Player,
		display:      deps.Display,
		tickInterval: deps.TickInterval,
		state:        &stopwatch.State{},
		laps:         stopwatch.NewLedger(deps.Schedule),
	}

	if s.repo != nil {
		saved, err := s.repo.Load(ctx)
		switch {
		case err == nil:
			s.laps.ImportHistory(saved)
			logger.InfoKV(ctx, "Imported saved laps", "count", len(saved))
		case errors.Is(err, ledger.ErrNotFound):
			// First run, nothing to import.
		default:
			logger.WarnKV(ctx, "Unable to load saved laps, starting empty", "error", err)
		}
	}

	return s
}

// Start begins or resumes the stopwatch and launches the tick loop. Creates
// the first lap on the very first start. No-op while already running.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	if !s.state.Start(now) {
		logger.Debug(ctx, "Start ignored: already running")

		return
	}

	s.laps.EnsureFirstLap(now, s.state)
	s.startTickLocked(ctx)

	logger.InfoKV(ctx, "Stopwatch started", "elapsed", s.state.Elapsed(now).String())
}

// Pause freezes the stopwatch and halts the tick loop. No-op while paused.
func (s *Service) Pause(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	if !s.state.Pause(now) {
		logger.Debug(ctx, "Pause ignored: not running")

		return
	}

	s.stopTickLocked()

	logger.InfoKV(ctx, "Stopwatch paused", "elapsed", s.state.Elapsed(now).String())
}

// Reset stops the stopwatch, empties the ledger, silences the alarm and
// requests a persistence clear. The session is back to its never-started
// condition afterwards.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reset()
	s.laps.Clear()
	s.stopTickLocked()

	if err := s.player.Stop(ctx); err != nil {
		logger.WarnKV(ctx, "Unable to stop alarm sound", "error", err)
	}

	if s.repo != nil {
		if err := s.repo.Clear(ctx); err != nil {
			logger.ErrorKV(ctx, "Unable to clear saved laps", "error", err)
		}
	}

	s.renderLocked(s.clk.Now())

	logger.Info(ctx, "Stopwatch reset")
}

// RecordLap closes the open lap and opens a new one, silencing any sounding
// alarm and saving the ledger. Recording before the stopwatch has ever
// started is ignored with an advisory log only.
func (s *Service) RecordLap(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()

	index, ok := s.laps.RecordLap(now, s.state)
	if !ok {
		logger.Info(ctx, "Lap ignored: stopwatch has never started")

		return
	}

	if err := s.player.Stop(ctx); err != nil {
		logger.WarnKV(ctx, "Unable to stop alarm sound", "error", err)
	}

	s.saveLocked(ctx)
	s.renderLocked(now)

	logger.InfoKV(ctx, "Lap recorded", "lap", index+1)
}

// SetThreshold updates a lap's alarm threshold; the lap's fired flag is
// cleared so the alarm is re-evaluated on the next tick. Returns false for an
// unknown lap index.
func (s *Service) SetThreshold(ctx context.Context, index int, threshold time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.laps.UpdateThreshold(index, threshold) {
		logger.InfoKV(ctx, "Threshold edit ignored: no such lap", "lap", index+1)

		return false
	}

	logger.InfoKV(ctx, "Alarm threshold updated", "lap", index+1, "threshold", threshold.String())

	return true
}

// ToggleArmed flips a lap's alarm on or off; the fired flag is cleared.
// Returns the new armed value; the second return is false for an unknown lap
// index.
func (s *Service) ToggleArmed(ctx context.Context, index int) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	armed, ok := s.laps.ToggleArmed(index)
	if !ok {
		logger.InfoKV(ctx, "Arm toggle ignored: no such lap", "lap", index+1)

		return false, false
	}

	logger.InfoKV(ctx, "Alarm toggled", "lap", index+1, "armed", armed)

	return armed, true
}

// Snapshot returns the current display projection.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(s.clk.Now())
}

// Close halts the tick loop. The in-memory state is left as is.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickLocked()
}

// Tick performs one refresh/evaluation step: refresh the displayed elapsed
// times, then evaluate the alarm on the freshly computed values and apply the
// fire decision. One wall-clock reading covers the whole step.
func (s *Service) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Running() {
		return
	}

	now := s.clk.Now()

	s.renderLocked(now)

	index, fire := stopwatch.EvaluateAlarm(s.laps, s.state, now)
	if !fire {
		return
	}

	// The alarm counts as triggered even if playback fails; there is no retry.
	s.laps.Lap(index).Fired = true

	logger.InfoKV(ctx, "Alarm fired",
		"lap", index+1,
		"elapsed", s.laps.LapElapsed(index, now, s.state).String())

	if err := s.player.Play(ctx); err != nil {
		logger.ErrorKV(ctx, "Unable to play alarm sound", "error", err)
	}
}

// startTickLocked launches the periodic tick loop. The loop never runs
// concurrently with itself: there is at most one goroutine, created here and
// retired through stopTick.
func (s *Service) startTickLocked(ctx context.Context) {
	if s.stopTick != nil {
		return
	}

	stop := make(chan struct{})
	s.stopTick = stop

	go s.run(ctx, stop)
}

// stopTickLocked retires the tick loop, if one is active.
func (s *Service) stopTickLocked() {
	if s.stopTick == nil {
		return
	}

	close(s.stopTick)
	s.stopTick = nil
}

// run drives Tick at the configured cadence until stopped or the context is
// canceled.
func (s *Service) run(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// saveLocked persists the ledger, best-effort.
func (s *Service) saveLocked(ctx context.Context) {
	if s.repo == nil {
		return
	}

	if err := s.repo.Save(ctx, s.laps.Laps()); err != nil {
		logger.ErrorKV(ctx, "Unable to save laps", "error", err)
	}
}

// renderLocked pushes a fresh snapshot to the display, if one is attached.
func (s *Service) renderLocked(now time.Time) {
	if s.display == nil {
		return
	}

	s.display.Render(s.snapshotLocked(now))
}

// snapshotLocked builds the display projection at the given instant.
func (s *Service) snapshotLocked(now time.Time) Snapshot {
	elapsed := s.state.Elapsed(now)

	snapshot := Snapshot{
		Running:     s.state.Running(),
		Elapsed:     elapsed,
		ElapsedText: stopwatch.FormatElapsed(elapsed),
		ActiveIndex: -1,
	}

	if index, ok := s.laps.ActiveIndex(); ok {
		snapshot.ActiveIndex = index
	}

	for i := 0; i < s.laps.Len(); i++ {
		lap := s.laps.Lap(i)
		lapElapsed := s.laps.LapElapsed(i, now, s.state)

		snapshot.Laps = append(snapshot.Laps, LapView{
			Index:         i,
			Status:        lap.Status(),
			Elapsed:       lapElapsed,
			ElapsedText:   stopwatch.FormatElapsed(lapElapsed),
			Threshold:     lap.AlarmThreshold,
			ThresholdText: stopwatch.FormatElapsed(lap.AlarmThreshold),
			Armed:         lap.Armed,
		})
	}

	return snapshot
}
