package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
)

type PerformanceServiceImpl struct {
	performance.MetricRepository
	adminLogs adminlog.AdminLogRepository
	tx        database.Transactor
	loc       *time.Location
	now       func() time.Time
}

func NewPerformanceService(tx database.Transactor, metricRepo performance.MetricRepository, adminLogRepo adminlog.AdminLogRepository, loc *time.Location) performance.PerformanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &PerformanceServiceImpl{
		MetricRepository: metricRepo,
		adminLogs:        adminLogRepo,
		tx:               tx,
		loc:              loc,
		now:              time.Now,
	}
}

// ListMine implements performance.PerformanceService.
func (s *PerformanceServiceImpl) ListMine(ctx context.Context, userID string, year *int) ([]performance.MetricResponse, error) {
	metrics, err := s.MetricRepository.ListByUser(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance metrics: %w", err)
	}

	responses := make([]performance.MetricResponse, 0, len(metrics))
	for _, m := range metrics {
		responses = append(responses, performance.ToResponse(m))
	}

	return responses, nil
}

// RefreshMonth implements performance.PerformanceService. When ctx carries
// an admin session the refresh is recorded in the admin log.
func (s *PerformanceServiceImpl) RefreshMonth(ctx context.Context, year, month int) (performance.RefreshResponse, error) {
	if month < 1 || month > 12 {
		return performance.RefreshResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "month must be between 1 and 12"},
		}
	}

	now := s.now().In(s.loc)
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	if from.After(now) {
		return performance.RefreshResponse{}, performance.ErrFutureMonth
	}

	elapsedDays := utils.DaysInMonth(year, time.Month(month))
	if now.Before(to) {
		elapsedDays = now.Day()
	}

	period := fmt.Sprintf("%04d-%02d", year, month)

	var updated int
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		totals, err := s.MetricRepository.AggregateMonth(txCtx, from, to, s.loc)
		if err != nil {
			return fmt.Errorf("failed to aggregate month: %w", err)
		}

		for _, t := range totals {
			_, err := s.MetricRepository.Upsert(txCtx, performance.Metric{
				UserID:         t.UserID,
				Year:           year,
				Month:          month,
				TotalMinutes:   t.TotalMinutes,
				AttendanceRate: performance.AttendanceRate(t.DutyDays, elapsedDays),
			})
			if err != nil {
				return fmt.Errorf("failed to upsert metric for user %s: %w", t.UserID, err)
			}
			updated++
		}

		if session, err := auth.SessionFromContext(txCtx); err == nil {
			entry := adminlog.NewEntry(txCtx, session.UserID, adminlog.ActionRefreshMetrics, adminlog.TargetPerformanceMetrics, "",
				map[string]any{"period": period, "users_updated": updated})
			if _, err := s.adminLogs.Create(txCtx, entry); err != nil {
				return fmt.Errorf("failed to write admin log: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return performance.RefreshResponse{}, err
	}

	slog.Info("Performance metrics refreshed", "period", period, "users_updated", updated)

	return performance.RefreshResponse{Period: period, UsersUpdated: updated}, nil
}
