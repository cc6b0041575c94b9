package clock

import "time"

// Clock provides time operations that can be mocked for testing. Match
// timestamps and stat elapsed times are all read through it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC, stripped of its monotonic reading so
// persisted values compare equal after a round-trip through storage
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
