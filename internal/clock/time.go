// Package clock provides the host-driven timers and frame requests that pace the game.
// Nothing in this package starts goroutines: the host advances time explicitly, either
// from wall-clock readings or manually in tests.
package clock

import (
	"sync"
	"time"
)

// TimeSource reports the current time.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the real clock, including its monotonic reading.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time {
	return time.Now()
}

// MockTime is a controllable time source for tests.
type MockTime struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockTime creates a mock time source starting at start.
func NewMockTime(start time.Time) *MockTime {
	return &MockTime{current: start}
}

// Now returns the mocked time.
func (m *MockTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the mocked time to t.
func (m *MockTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the mocked time forward by d.
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
