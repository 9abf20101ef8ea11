package ingest

import "time"

// Clock supplies the current time. Reconcilers use it for the default
// checkup date and for audit timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today is the calendar date of c.Now(), as a UTC midnight.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}
