package postgresql

import (
	"context"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetLeaderboard returns the top active users by total minutes
func (r *dashboardRepositoryImpl) GetLeaderboard(ctx context.Context, limit int) ([]dashboard.LeaderboardRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, discord_id, username, display_name, custom_name, rank, department, total_minutes
		FROM users
		WHERE is_active = TRUE
		ORDER BY total_minutes DESC, created_at ASC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	result := make([]dashboard.LeaderboardRow, 0, limit)
	for rows.Next() {
		var row dashboard.LeaderboardRow
		if err := rows.Scan(
			&row.UserID, &row.DiscordID, &row.Username, &row.DisplayName, &row.CustomName,
			&row.Rank, &row.Department, &row.TotalMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return result, nil
}

// GetActiveRoster joins active users with their open shift
func (r *dashboardRepositoryImpl) GetActiveRoster(ctx context.Context) ([]dashboard.RosterRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.discord_id, u.username, u.display_name, u.custom_name, u.rank, u.department,
			   a.id, a.clock_in
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = 'active'
		  AND a.clock_out IS NULL
		  AND u.is_active = TRUE
		ORDER BY a.clock_in ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active roster: %w", err)
	}
	defer rows.Close()

	result := make([]dashboard.RosterRow, 0)
	for rows.Next() {
		var row dashboard.RosterRow
		if err := rows.Scan(
			&row.UserID, &row.DiscordID, &row.Username, &row.DisplayName, &row.CustomName,
			&row.Rank, &row.Department, &row.AttendanceID, &row.ClockIn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	return result, nil
}

// GetStats returns total/active users and how many are on duty in single query
func (r *dashboardRepositoryImpl) GetStats(ctx context.Context) (*dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE) AS active_users,
			(SELECT COUNT(*) FROM attendance WHERE status = 'active' AND clock_out IS NULL) AS on_duty
	`

	var stats dashboard.Stats
	if err := q.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.CurrentlyOnDuty); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}
