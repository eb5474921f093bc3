package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	users     user.UserRepository
	adminLogs adminlog.AdminLogRepository
	tx        database.Transactor
	notifier  attendance.DutyNotifier
	loc       *time.Location
	now       func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	adminLogRepository adminlog.AdminLogRepository,
	notifier attendance.DutyNotifier,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		users:                userRepository,
		adminLogs:            adminLogRepository,
		tx:                   tx,
		notifier:             notifier,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) getUser(ctx context.Context, userID string) (user.User, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (a *AttendanceServiceImpl) notify(eventType string, att attendance.Attendance) {
	if a.notifier == nil {
		return
	}
	a.notifier.NotifyDuty(attendance.DutyEvent{
		Type:         eventType,
		UserID:       att.UserID,
		AttendanceID: att.ID,
		At:           a.now().UTC().Format(time.RFC3339),
		Duration:     att.Duration,
	})
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	u, err := a.getUser(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !u.IsActive {
		return attendance.AttendanceResponse{}, user.ErrUserInactive
	}

	_, err = a.AttendanceRepository.GetActiveByUserID(ctx, userID)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open shift: %w", err)
	}

	// The partial unique index turns a concurrent duplicate into ErrAlreadyClockedIn.
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:    u.ID,
		DiscordID: u.DiscordID,
		ClockIn:   a.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	a.notify(attendance.EventClockIn, created)
	return attendance.ToResponse(created), nil
}

// ClockOut implements attendance.AttendanceService. Closing the shift and
// crediting the user's total happen in one transaction.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, userID string) (attendance.ClockOutResponse, error) {
	var resp attendance.ClockOutResponse
	var completed attendance.Attendance

	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		active, err := a.AttendanceRepository.GetActiveByUserID(txCtx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotClockedIn
			}
			return fmt.Errorf("failed to get open shift: %w", err)
		}

		now := a.now().UTC()
		duration := utils.DurationMinutes(active.ClockIn, now)

		completed, err = a.AttendanceRepository.Complete(txCtx, active.ID, now, duration)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotClockedIn
			}
			return fmt.Errorf("failed to complete shift: %w", err)
		}

		total, err := a.users.AddMinutes(txCtx, userID, duration)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("failed to credit minutes: %w", err)
		}

		resp = attendance.ClockOutResponse{
			Attendance:        attendance.ToResponse(completed),
			Duration:          duration,
			DurationFormatted: utils.FormatDuration(duration),
			TotalMinutes:      total,
		}
		return nil
	})
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	a.notify(attendance.EventClockOut, completed)
	return resp, nil
}

// GetActiveShift implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetActiveShift(ctx context.Context, userID string) (*attendance.AttendanceResponse, error) {
	active, err := a.AttendanceRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	resp := attendance.ToResponse(active)
	return &resp, nil
}

// GetStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context, userID string) (attendance.StatusResponse, error) {
	u, err := a.getUser(ctx, userID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	status := attendance.StatusResponse{User: user.ToResponse(u)}

	active, err := a.AttendanceRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return status, nil
		}
		return attendance.StatusResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}

	resp := attendance.ToResponse(active)
	status.OnDuty = true
	status.ActiveShift = &resp
	status.ElapsedMinutes = utils.DurationMinutes(active.ClockIn, a.now())
	status.Elapsed = utils.FormatDuration(status.ElapsedMinutes)
	return status, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	filter.Normalize()

	records, err := a.AttendanceRepository.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return responses, nil
}

// GetOverview implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetOverview(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.OverviewResponse, error) {
	filter.Normalize()

	u, err := a.getUser(ctx, userID)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	active, err := a.GetActiveShift(ctx, userID)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	// One extra row tells whether another page exists.
	probe := attendance.HistoryFilter{Limit: filter.Limit + 1, Offset: filter.Offset}
	records, err := a.AttendanceRepository.ListByUserID(ctx, userID, probe)
	if err != nil {
		return attendance.OverviewResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	hasMore := len(records) > filter.Limit
	if hasMore {
		records = records[:filter.Limit]
	}

	history := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		history = append(history, attendance.ToResponse(r))
	}

	return attendance.OverviewResponse{
		User:        user.ToResponse(u),
		ActiveShift: active,
		History:     history,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
		HasMore:     hasMore,
	}, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, userID string) (attendance.SummaryResponse, error) {
	u, err := a.getUser(ctx, userID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	now := a.now().In(a.loc)
	weekStart := utils.StartOfWeek(now)
	monthStart := utils.StartOfMonth(now)

	weekly, err := a.AttendanceRepository.SumCompletedMinutes(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to sum weekly minutes: %w", err)
	}

	monthly, err := a.AttendanceRepository.SumCompletedMinutes(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to sum monthly minutes: %w", err)
	}

	return attendance.SummaryResponse{
		WeekStart:      weekStart.Format("2006-01-02"),
		WeeklyMinutes:  weekly,
		WeeklyHours:    utils.FormatDuration(weekly),
		MonthStart:     monthStart.Format("2006-01-02"),
		MonthlyMinutes: monthly,
		MonthlyHours:   utils.FormatDuration(monthly),
		TotalMinutes:   u.TotalMinutes,
		TotalHours:     utils.FormatDuration(u.TotalMinutes),
	}, nil
}

type shiftSnapshot struct {
	ClockIn  string  `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Duration *int64  `json:"duration"`
	Status   string  `json:"status"`
}

func snapshot(a attendance.Attendance) shiftSnapshot {
	resp := attendance.ToResponse(a)
	return shiftSnapshot{
		ClockIn:  resp.ClockIn,
		ClockOut: resp.ClockOut,
		Duration: resp.Duration,
		Status:   resp.Status,
	}
}

// EditAttendance implements attendance.AttendanceService. Duration is
// recomputed from the corrected times and the owner's total moves by the
// difference.
func (a *AttendanceServiceImpl) EditAttendance(ctx context.Context, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error) {
	session, err := auth.RequireAdmin(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !validator.IsValidUUID(req.ID) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	clockIn, clockOut := req.ParsedTimes()

	var updated attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		next := current
		if clockIn != nil {
			next.ClockIn = clockIn.UTC()
		}
		if clockOut != nil {
			out := clockOut.UTC()
			next.ClockOut = &out
		}

		if next.ClockOut != nil && next.ClockOut.Before(next.ClockIn) {
			return attendance.ErrInvalidTimeRange
		}

		var credited int64
		if current.Status == attendance.StatusCompleted && current.Duration != nil {
			credited = *current.Duration
		}

		var delta int64
		if next.ClockOut != nil {
			duration := utils.DurationMinutes(next.ClockIn, *next.ClockOut)
			next.Duration = &duration
			if current.Status != attendance.StatusCancelled {
				next.Status = attendance.StatusCompleted
				delta = duration - credited
			}
		}

		updated, err = a.AttendanceRepository.Update(txCtx, next)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		if delta != 0 {
			if _, err := a.users.AddMinutes(txCtx, current.UserID, delta); err != nil {
				return fmt.Errorf("failed to adjust total minutes: %w", err)
			}
		}

		details := map[string]any{
			"before":        snapshot(current),
			"after":         snapshot(updated),
			"minutes_delta": delta,
		}
		entry := adminlog.NewEntry(txCtx, session.UserID, adminlog.ActionUpdateAttendance, adminlog.TargetAttendance, updated.ID, details)
		if _, err := a.adminLogs.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write admin log: %w", err)
		}

		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notify(attendance.EventEdited, updated)
	return attendance.ToResponse(updated), nil
}
