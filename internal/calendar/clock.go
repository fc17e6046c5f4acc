package calendar

import "time"

// Clock supplies the current time. Progression logic never calls time.Now
// directly so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local zone.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a settable clock for tests and simulations.
type FixedClock struct {
	T time.Time
}

// NewFixedClock returns a clock pinned to local midnight of d plus the given hour.
func NewFixedClock(d Date, hour int) *FixedClock {
	return &FixedClock{T: d.Time(time.Local).Add(time.Duration(hour) * time.Hour)}
}

// Now returns the pinned time.
func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// AdvanceDays moves the clock forward by n calendar days keeping the wall time.
func (c *FixedClock) AdvanceDays(n int) {
	c.T = c.T.AddDate(0, 0, n)
}

// Today returns the calendar date of the clock's current time.
func Today(c Clock) Date {
	return FromTime(c.Now())
}
