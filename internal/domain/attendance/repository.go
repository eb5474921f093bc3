package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts an open shift. Returns ErrAlreadyClockedIn when the user
	// already has one.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetActiveByUserID returns the user's open shift, if any
	GetActiveByUserID(ctx context.Context, userID string) (Attendance, error)

	// ListByUserID returns shifts ordered by clock_in DESC
	ListByUserID(ctx context.Context, userID string, filter HistoryFilter) ([]Attendance, error)

	// Complete closes the shift only if it is still open
	Complete(ctx context.Context, id string, clockOut time.Time, duration int64) (Attendance, error)

	// Update overwrites times, duration and status (admin correction)
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// SumCompletedMinutes sums durations of completed shifts clocked in within [from, to)
	SumCompletedMinutes(ctx context.Context, userID string, from, to time.Time) (int64, error)
}
