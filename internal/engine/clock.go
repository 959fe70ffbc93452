package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The converter uses it to determine "today" for reports and for centering
// the occasions feed window.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
