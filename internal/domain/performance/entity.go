package performance

import "time"

// Metric is one user's performance for a calendar month. Rates and scores
// are stored as percentage * 100, rating as stars * 100.
type Metric struct {
	ID               string
	UserID           string
	Year             int
	Month            int
	TotalMinutes     int64
	AttendanceRate   int
	PunctualityScore int
	TotalCalls       int
	Rating           int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AttendanceRate returns distinct duty days over elapsed days as percentage * 100.
func AttendanceRate(dutyDays, elapsedDays int) int {
	if elapsedDays <= 0 || dutyDays <= 0 {
		return 0
	}
	if dutyDays > elapsedDays {
		dutyDays = elapsedDays
	}
	return dutyDays * 10000 / elapsedDays
}
