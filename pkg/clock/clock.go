package clock

import "time"

// Clock abstracts the current time so date-boundary rules (session duration
// checks, term reactivation eligibility) are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return f.T }
