package clock

import (
	"sync"
	"time"
)

// Clock abstracts the wall-clock reading so time-dependent logic can be
// driven deterministically in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// System implements Clock using the real system time.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a Clock whose reading only moves when told to.
// Safe for concurrent use.
type Manual struct {
	// mu protects now against concurrent Advance/Now calls.
	mu sync.Mutex
	// now is the frozen current reading.
	now time.Time
}

// NewManual returns a Manual clock frozen at the provided instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the frozen reading.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Advance moves the reading forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}

// Set pins the reading to the provided instant.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
}
