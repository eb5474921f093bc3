package utils

import (
	"fmt"
	"math"
	"time"
)

// DurationMinutes returns the whole minutes between from and to, rounded
// down. The result is negative when to is before from.
func DurationMinutes(from, to time.Time) int64 {
	return int64(math.Floor(to.Sub(from).Minutes()))
}

// FormatDuration renders minutes as "{h}h {m}m".
func FormatDuration(minutes int64) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%dh %dm", sign, minutes/60, minutes%60)
}

// StartOfWeek returns Monday 00:00 of the week containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month at 00:00, in t's location.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
