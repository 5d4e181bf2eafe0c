package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Every derivation pass reads it exactly once, so health score, tiers and
// drift flags of a single pass agree on what "today" is.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
