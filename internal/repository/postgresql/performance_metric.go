package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type performanceMetricRepositoryImpl struct {
	db *database.DB
}

func NewPerformanceMetricRepository(db *database.DB) performance.MetricRepository {
	return &performanceMetricRepositoryImpl{db: db}
}

const metricColumns = `id, user_id, year, month, total_minutes, attendance_rate, punctuality_score,
		total_calls, rating, created_at, updated_at`

func scanMetric(row pgx.Row) (performance.Metric, error) {
	var m performance.Metric
	err := row.Scan(
		&m.ID, &m.UserID, &m.Year, &m.Month, &m.TotalMinutes, &m.AttendanceRate,
		&m.PunctualityScore, &m.TotalCalls, &m.Rating, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// AggregateMonth implements performance.MetricRepository.
func (r *performanceMetricRepositoryImpl) AggregateMonth(ctx context.Context, from, to time.Time, loc *time.Location) ([]performance.UserMonthTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id,
			   COALESCE(SUM(a.duration), 0)::BIGINT AS total_minutes,
			   COUNT(DISTINCT (a.clock_in AT TIME ZONE $3)::DATE)::INT AS duty_days
		FROM users u
		LEFT JOIN attendance a
			   ON a.user_id = u.id
			  AND a.status = 'completed'
			  AND a.clock_in >= $1
			  AND a.clock_in < $2
		WHERE u.is_active = TRUE
		GROUP BY u.id
	`

	rows, err := q.Query(ctx, query, from, to, loc.String())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month: %w", err)
	}
	defer rows.Close()

	totals := make([]performance.UserMonthTotals, 0)
	for rows.Next() {
		var t performance.UserMonthTotals
		if err := rows.Scan(&t.UserID, &t.TotalMinutes, &t.DutyDays); err != nil {
			return nil, fmt.Errorf("failed to scan month totals: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate month totals: %w", err)
	}

	return totals, nil
}

// Upsert implements performance.MetricRepository.
func (r *performanceMetricRepositoryImpl) Upsert(ctx context.Context, m performance.Metric) (performance.Metric, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return performance.Metric{}, fmt.Errorf("generate metric id: %w", err)
	}

	query := `
		INSERT INTO performance_metrics (id, user_id, year, month, total_minutes, attendance_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, year, month) DO UPDATE
		SET total_minutes = EXCLUDED.total_minutes,
			attendance_rate = EXCLUDED.attendance_rate,
			updated_at = NOW()
		RETURNING ` + metricColumns

	saved, err := scanMetric(q.QueryRow(ctx, query,
		id.String(), m.UserID, m.Year, m.Month, m.TotalMinutes, m.AttendanceRate,
	))
	if err != nil {
		return performance.Metric{}, fmt.Errorf("failed to upsert performance metric: %w", err)
	}

	return saved, nil
}

// ListByUser implements performance.MetricRepository.
func (r *performanceMetricRepositoryImpl) ListByUser(ctx context.Context, userID string, year *int) ([]performance.Metric, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE user_id = $1"
	args := []interface{}{userID}
	if year != nil {
		whereClause += " AND year = $2"
		args = append(args, *year)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM performance_metrics
		%s
		ORDER BY year DESC, month DESC
	`, metricColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance metrics: %w", err)
	}
	defer rows.Close()

	metrics := make([]performance.Metric, 0)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance metric: %w", err)
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}
