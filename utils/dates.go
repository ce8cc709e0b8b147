// utils/dates.go
package utils

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the most recent Monday (ISO week start) on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return BeginningOfDay(t).AddDate(0, 0, -offset)
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseDate accepts a calendar date in YYYY-MM-DD form. Empty or malformed
// input yields "".
func ParseDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseClock accepts HH:MM or HH:MM:SS and normalizes to HH:MM:SS. Empty or
// malformed input yields "".
func ParseClock(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(ClockLayout)
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format(ClockLayout)
	}
	return ""
}
