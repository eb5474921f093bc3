package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
)

const RefreshPerformanceJob = "refresh_performance_metrics"

// PerformanceJobs keeps monthly performance metrics current
type PerformanceJobs struct {
	performanceService performance.PerformanceService
	interval           time.Duration
	loc                *time.Location
	now                func() time.Time
}

func NewPerformanceJobs(performanceService performance.PerformanceService, interval time.Duration, loc *time.Location) *PerformanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PerformanceJobs{
		performanceService: performanceService,
		interval:           interval,
		loc:                loc,
		now:                time.Now,
	}
}

func (j *PerformanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(RefreshPerformanceJob, j.interval, j.RefreshPerformanceMetrics)
}

// RefreshPerformanceMetrics recomputes the current month. During the first
// day of a month the previous month is finalised too.
func (j *PerformanceJobs) RefreshPerformanceMetrics(ctx context.Context) error {
	now := j.now().In(j.loc)

	periods := []time.Time{now}
	if now.Day() == 1 {
		periods = append(periods, now.AddDate(0, 0, -1))
	}

	for _, p := range periods {
		result, err := j.performanceService.RefreshMonth(ctx, p.Year(), int(p.Month()))
		if err != nil {
			return fmt.Errorf("refresh %04d-%02d: %w", p.Year(), int(p.Month()), err)
		}
		slog.Info("Cron: Performance metrics refreshed", "period", result.Period, "users", result.UsersUpdated)
	}

	return nil
}
