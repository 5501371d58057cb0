// Package timeutil provides clock abstraction and calendar-date helpers.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time.Now() so a search's reference "today"
// can be pinned in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock uses the actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a controllable time for testing.
type MockClock struct {
	mu        sync.RWMutex
	fixedTime time.Time
}

// NewMockClock creates a mock clock with the given fixed time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{fixedTime: t}
}

// NewMockClockFromDate creates a mock clock set to noon UTC on the given YYYY-MM-DD date.
// Panics if the date is invalid (for use in tests only).
func NewMockClockFromDate(date string) *MockClock {
	d, err := ParseDate(date)
	if err != nil {
		panic("invalid date string: " + err.Error())
	}
	return &MockClock{fixedTime: d.Add(12 * time.Hour)}
}

// Now returns the fixed time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fixedTime
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.fixedTime = t
	m.mu.Unlock()
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.fixedTime = m.fixedTime.Add(d)
	m.mu.Unlock()
}

// AdvanceDays moves the mock clock forward by the given number of calendar days.
func (m *MockClock) AdvanceDays(days int) {
	m.mu.Lock()
	m.fixedTime = m.fixedTime.AddDate(0, 0, days)
	m.mu.Unlock()
}

// Ensure interfaces are implemented.
var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
