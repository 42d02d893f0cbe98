// Package clock abstracts time so date-sensitive logic (streaks, daily
// missions, review scheduling) can be tested with fixed dates.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Advance it explicitly in tests.
type Fixed struct {
	T time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{T: t} }

func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// AdvanceDays moves the fixed clock forward by whole days.
func (f *Fixed) AdvanceDays(n int) { f.T = f.T.AddDate(0, 0, n) }

// DateOf formats t as a local calendar date (YYYY-MM-DD).
// Streaks and mission rotation key on this, not on 24h windows.
func DateOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Yesterday returns the calendar date one day before t.
func Yesterday(t time.Time) string {
	return DateOf(t.AddDate(0, 0, -1))
}

// NextMidnight returns the first instant of the day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
