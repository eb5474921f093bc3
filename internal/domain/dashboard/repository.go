package dashboard

import (
	"context"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
)

// LeaderboardRow is an active user ranked by total minutes
type LeaderboardRow struct {
	UserID       string
	DiscordID    string
	Username     string
	DisplayName  string
	CustomName   *string
	Rank         user.Rank
	Department   user.Department
	TotalMinutes int64
}

// RosterRow is an active user joined with their open shift
type RosterRow struct {
	UserID       string
	DiscordID    string
	Username     string
	DisplayName  string
	CustomName   *string
	Rank         user.Rank
	Department   user.Department
	AttendanceID string
	ClockIn      time.Time
}

// Stats combines the headline counters in single query
type Stats struct {
	TotalUsers      int64
	ActiveUsers     int64
	CurrentlyOnDuty int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetLeaderboard returns active users ordered by total_minutes DESC
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)

	// GetActiveRoster returns active users that currently have an open shift
	GetActiveRoster(ctx context.Context) ([]RosterRow, error)

	GetStats(ctx context.Context) (*Stats, error)
}
