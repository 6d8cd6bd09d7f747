// Package clock supplies the calendar date that installment classification
// and reporting are evaluated against. Services receive a Clock instead of
// calling time.Now so tests can pin "today".
package clock

import "time"

// Clock returns the current calendar date.
type Clock interface {
	Today() time.Time
}

// System reads the wall clock in Location (UTC when nil).
type System struct {
	Location *time.Location
}

// Today implements Clock.
func (s System) Today() time.Time {
	now := time.Now()
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return DateOf(now)
}

// Fixed always reports the same date.
type Fixed time.Time

// Today implements Clock.
func (f Fixed) Today() time.Time {
	return DateOf(time.Time(f))
}

// DateOf drops the time-of-day and location of t, keeping its calendar date
// as midnight UTC. All dates handled by the engine are in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date is shorthand for a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last day of the month containing ref.
func MonthRange(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	first := Date(y, m, 1)
	return first, first.AddDate(0, 1, -1)
}
