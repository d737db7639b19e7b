package domain

import "time"

// DateLayout is the canonical date-only layout used for week keys and
// SQLite storage.
const DateLayout = "2006-01-02"

// WeekStart normalizes t to the Monday of its week at 00:00 UTC.
// All week comparisons in the engine are date-only in UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// DateKey formats t as a date-only string suitable for map keys.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// SameDate reports whether a and b fall on the same UTC calendar day.
func SameDate(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
