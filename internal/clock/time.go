// Package clock paces a fixed-timestep simulation against a display refresh
// signal. Time is injected so pacing is testable without sleeping.
package clock

import (
	"sync"
	"time"
)

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

// SystemTime provides the real system time with monotonic clock readings.
type SystemTime struct{}

// Now returns the current time.
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable time source for tests and headless runs.
type ManualTime struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualTime creates a manual time source starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{current: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set sets the current time.
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the current time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
