// Package calendar provides a normalized calendar-date value type and the day
// and week boundary checks used by daily check-ins and weekly task rollover.
// Comparisons are done on (year, month, day) only, never on timestamps or
// formatted strings.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the canonical on-disk representation of a Date.
const dateLayout = time.DateOnly

// Date is a calendar day without time of day or zone.
// The zero value means "never set".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate builds a normalized date. Out-of-range days roll over the same way
// time.Date does (e.g. Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse reads a date in YYYY-MM-DD form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns local midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays moves the date by n calendar days.
// Computed in UTC so DST transitions never skip or repeat a day.
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Yesterday returns the previous calendar day.
func (d Date) Yesterday() Date {
	return d.AddDays(-1)
}

// Weekday returns the day of week of the date.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// WeekStart returns the most recent Sunday on or before d.
func (d Date) WeekStart() Date {
	return d.AddDays(-int(d.Weekday()))
}

// Equal reports whether both values name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns YYYY-MM-DD, or an empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string ("" when unset).
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string. An empty string yields the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("calendar: date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsNewDay reports whether today differs from the stored last date.
// An unset last date always counts as a new day.
func IsNewDay(last, today Date) bool {
	return !last.Equal(today)
}

// IsConsecutive reports whether today is exactly the day after last.
func IsConsecutive(last, today Date) bool {
	return !last.IsZero() && last.AddDays(1).Equal(today)
}

// IsNewWeek reports whether the stored week anchor differs from the start of
// the week containing today.
func IsNewWeek(anchor, today Date) bool {
	return anchor.IsZero() || !anchor.Equal(today.WeekStart())
}
