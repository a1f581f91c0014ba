// Package timeutil provides local-timezone day arithmetic for the daily
// score update window. The window always closes at a midnight boundary in
// the configured location, never a rolling 24 hours.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// StartOfDay returns midnight (00:00:00) of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NextMidnight returns midnight of the day after t's day in loc. This is
// the instant the daily update window reopens after an update at t.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1)
}

// EndOfDay returns the last nanosecond of t's day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return NextMidnight(t, loc).Add(-time.Nanosecond)
}

// IsSameDay checks whether t1 and t2 fall on the same calendar day in loc.
func IsSameDay(t1, t2 time.Time, loc *time.Location) bool {
	a, b := t1.In(loc), t2.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysBetween returns the number of whole calendar days between t1 and t2
// in loc, ignoring the time of day.
func DaysBetween(t1, t2 time.Time, loc *time.Location) int {
	a := StartOfDay(t1, loc)
	b := StartOfDay(t2, loc)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
