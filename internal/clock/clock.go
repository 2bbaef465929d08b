// Package clock abstracts the wall clock so session timestamps are
// deterministic in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current wall time with the monotonic reading stripped, so
// a value survives a JSON round trip unchanged.
func (RealClock) Now() time.Time {
	return time.Now().Round(0)
}

// FakeClock is a settable clock for tests.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a FakeClock stopped at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

func (c *FakeClock) Now() time.Time {
	return c.current
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
