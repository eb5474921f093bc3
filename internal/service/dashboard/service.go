package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 time.Now,
	}
}

func displayName(username, display string, custom *string) string {
	u := user.User{Username: username, DisplayName: display, CustomName: custom}
	return u.EffectiveName()
}

// Leaderboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Leaderboard(ctx context.Context, limit int) ([]dashboard.LeaderboardEntry, error) {
	limit = dashboard.NormalizeLeaderboardLimit(limit)

	rows, err := s.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]dashboard.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dashboard.LeaderboardEntry{
			Position:     i + 1,
			UserID:       row.UserID,
			DiscordID:    row.DiscordID,
			Username:     row.Username,
			Name:         displayName(row.Username, row.DisplayName, row.CustomName),
			Rank:         string(row.Rank),
			Department:   string(row.Department),
			TotalMinutes: row.TotalMinutes,
			TotalHours:   utils.FormatDuration(row.TotalMinutes),
		})
	}

	return entries, nil
}

// ActiveRoster implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ActiveRoster(ctx context.Context) (*dashboard.RosterResponse, error) {
	rows, err := s.GetActiveRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active roster: %w", err)
	}

	now := s.now()
	members := make([]dashboard.RosterMember, 0, len(rows))
	for _, row := range rows {
		elapsed := utils.DurationMinutes(row.ClockIn, now)
		members = append(members, dashboard.RosterMember{
			UserID:         row.UserID,
			DiscordID:      row.DiscordID,
			Username:       row.Username,
			Name:           displayName(row.Username, row.DisplayName, row.CustomName),
			Rank:           string(row.Rank),
			Department:     string(row.Department),
			AttendanceID:   row.AttendanceID,
			ClockIn:        row.ClockIn.Format(time.RFC3339),
			ElapsedMinutes: elapsed,
			Elapsed:        utils.FormatDuration(elapsed),
		})
	}

	return &dashboard.RosterResponse{
		Members: members,
		Count:   len(members),
	}, nil
}

// Stats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (*dashboard.StatsResponse, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &dashboard.StatsResponse{
		TotalUsers:      stats.TotalUsers,
		ActiveUsers:     stats.ActiveUsers,
		CurrentlyOnDuty: stats.CurrentlyOnDuty,
	}, nil
}

// Overview returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) Overview(ctx context.Context) (*dashboard.OverviewResponse, error) {
	var (
		leaderboard []dashboard.LeaderboardEntry
		roster      *dashboard.RosterResponse
		stats       *dashboard.StatsResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Leaderboard (top 10)
	g.Go(func() error {
		var err error
		leaderboard, err = s.Leaderboard(gCtx, 0)
		return err
	})

	// 2. Active roster
	g.Go(func() error {
		var err error
		roster, err = s.ActiveRoster(gCtx)
		return err
	})

	// 3. Headline counters
	g.Go(func() error {
		var err error
		stats, err = s.Stats(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.OverviewResponse{
		Leaderboard: leaderboard,
		Roster:      *roster,
		Stats:       *stats,
		UpdatedAt:   s.now().Format(time.RFC3339),
	}, nil
}
