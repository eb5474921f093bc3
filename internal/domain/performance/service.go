package performance

import "context"

type PerformanceService interface {
	// ListMine returns the user's monthly metrics, newest first
	ListMine(ctx context.Context, userID string, year *int) ([]MetricResponse, error)
	// RefreshMonth recomputes metrics for every active user
	RefreshMonth(ctx context.Context, year, month int) (RefreshResponse, error)
}
