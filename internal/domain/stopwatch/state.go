package stopwatch

import "time"

// State holds the run/pause flag and the timestamp bookkeeping of the main
// stopwatch.
//
// While running, elapsed time is derived from the start epoch; while paused,
// the frozen accumulated value is authoritative. Resuming rewrites the epoch
// so elapsed time is continuous across the pause boundary.
type State struct {
	// running is true between Start and Pause/Reset.
	running bool
	// startEpoch is the wall-clock instant corresponding to elapsed zero for
	// the current run segment. Valid only when anchored is true.
	startEpoch time.Time
	// anchored reports whether startEpoch has ever been set. It stays true
	// across pauses and is cleared only by Reset.
	anchored bool
	// accumulated is the elapsed time frozen at the last pause.
	accumulated time.Duration
}

// Running reports whether the stopwatch is currently running.
func (s *State) Running() bool {
	return s.running
}

// Started reports whether the stopwatch has ever been started since the last
// reset.
func (s *State) Started() bool {
	return s.anchored
}

// StartEpoch returns the current run segment's epoch. The second return is
// false if the stopwatch has never started.
func (s *State) StartEpoch() (time.Time, bool) {
	return s.startEpoch, s.anchored
}

// Start transitions the stopwatch into the running state. The epoch is
// backdated by the accumulated elapsed so time continues where the last pause
// left off. Returns false if already running.
func (s *State) Start(now time.Time) bool {
	if s.running {
		return false
	}

	s.running = true
	s.startEpoch = now.Add(-s.accumulated)
	s.anchored = true

	return true
}

// Pause freezes the stopwatch, capturing the elapsed time at this instant.
// Returns false if not running.
func (s *State) Pause(now time.Time) bool {
	if !s.running {
		return false
	}

	s.running = false
	s.accumulated = clampElapsed(now.Sub(s.startEpoch))

	return true
}

// Reset returns the stopwatch to its initial never-started condition.
func (s *State) Reset() {
	s.running = false
	s.startEpoch = time.Time{}
	s.anchored = false
	s.accumulated = 0
}

// Elapsed returns the stopwatch's current elapsed time: now minus the epoch
// while running, the frozen accumulated value while paused. Never negative.
func (s *State) Elapsed(now time.Time) time.Duration {
	if s.running {
		return clampElapsed(now.Sub(s.startEpoch))
	}

	return clampElapsed(s.accumulated)
}

// clampElapsed floors a derived elapsed value at zero.
func clampElapsed(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}

	return d
}
