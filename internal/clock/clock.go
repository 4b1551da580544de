// Package clock provides an injectable time source so components that depend
// on the current date (order id generation, timestamps) stay deterministic in
// tests.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the wall clock.
type System struct{}

// Now returns the current time in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Time time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Time
}
