package attendance

import "errors"

// Attendance domain errors
var (
	// Lifecycle errors
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not clocked in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidTimeRange   = errors.New("clock_out must not be before clock_in")
)
