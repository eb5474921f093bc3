package performance

import (
	"context"
	"time"
)

// UserMonthTotals is the raw per-user aggregate of completed shifts in a month
type UserMonthTotals struct {
	UserID       string
	TotalMinutes int64
	DutyDays     int
}

type MetricRepository interface {
	// AggregateMonth sums completed minutes and counts distinct duty days
	// (in loc) for every active user with clock_in in [from, to).
	AggregateMonth(ctx context.Context, from, to time.Time, loc *time.Location) ([]UserMonthTotals, error)
	// Upsert writes total_minutes and attendance_rate, keeping the manually
	// maintained punctuality, calls and rating columns.
	Upsert(ctx context.Context, m Metric) (Metric, error)
	ListByUser(ctx context.Context, userID string, year *int) ([]Metric, error)
}
