package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Leaderboard returns the top limit active users by total minutes
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// ActiveRoster returns members currently on duty with elapsed minutes
	ActiveRoster(ctx context.Context) (*RosterResponse, error)

	Stats(ctx context.Context) (*StatsResponse, error)

	// Overview returns combined dashboard data using goroutines
	Overview(ctx context.Context) (*OverviewResponse, error)
}
