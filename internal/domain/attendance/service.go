package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a shift for the user
	ClockIn(ctx context.Context, userID string) (AttendanceResponse, error)

	// ClockOut closes the open shift and credits its duration to the user
	ClockOut(ctx context.Context, userID string) (ClockOutResponse, error)

	// GetActiveShift returns nil when the user is off duty
	GetActiveShift(ctx context.Context, userID string) (*AttendanceResponse, error)

	// GetStatus reports whether the user is on duty and for how long
	GetStatus(ctx context.Context, userID string) (StatusResponse, error)

	GetHistory(ctx context.Context, userID string, filter HistoryFilter) ([]AttendanceResponse, error)

	// GetOverview bundles the fresh user row, open shift and recent history
	GetOverview(ctx context.Context, userID string, filter HistoryFilter) (OverviewResponse, error)

	// GetSummary reports weekly and monthly completed minutes
	GetSummary(ctx context.Context, userID string) (SummaryResponse, error)

	// EditAttendance corrects a shift's times (admin)
	EditAttendance(ctx context.Context, req EditAttendanceRequest) (AttendanceResponse, error)
}
