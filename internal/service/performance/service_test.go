package performance

import (
	"context"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetricRepo struct {
	totals   []performance.UserMonthTotals
	from, to time.Time
	saved    map[string]performance.Metric
}

func (f *fakeMetricRepo) AggregateMonth(ctx context.Context, from, to time.Time, loc *time.Location) ([]performance.UserMonthTotals, error) {
	f.from, f.to = from, to
	return f.totals, nil
}

func (f *fakeMetricRepo) Upsert(ctx context.Context, m performance.Metric) (performance.Metric, error) {
	f.saved[m.UserID] = m
	return m, nil
}

func (f *fakeMetricRepo) ListByUser(ctx context.Context, userID string, year *int) ([]performance.Metric, error) {
	var out []performance.Metric
	for _, m := range f.saved {
		if m.UserID == userID && (year == nil || m.Year == *year) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAdminLogRepo struct {
	entries []adminlog.AdminLog
}

func (f *fakeAdminLogRepo) Create(ctx context.Context, entry adminlog.AdminLog) (adminlog.AdminLog, error) {
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeAdminLogRepo) List(ctx context.Context, filter adminlog.ListAdminLogFilter) ([]adminlog.AdminLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func newTestService(now time.Time) (*PerformanceServiceImpl, *fakeMetricRepo, *fakeAdminLogRepo) {
	repo := &fakeMetricRepo{saved: make(map[string]performance.Metric)}
	logs := &fakeAdminLogRepo{}
	svc := NewPerformanceService(fakeTx{}, repo, logs, time.UTC).(*PerformanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo, logs
}

func TestRefreshMonth_CurrentMonthUsesElapsedDays(t *testing.T) {
	svc, repo, logs := newTestService(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	repo.totals = []performance.UserMonthTotals{
		{UserID: "u1", TotalMinutes: 600, DutyDays: 5},
		{UserID: "u2", TotalMinutes: 0, DutyDays: 0},
	}

	resp, err := svc.RefreshMonth(context.Background(), 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", resp.Period)
	assert.Equal(t, 2, resp.UsersUpdated)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), repo.to)
	assert.Equal(t, 5000, repo.saved["u1"].AttendanceRate)
	assert.Equal(t, int64(600), repo.saved["u1"].TotalMinutes)
	assert.Equal(t, 0, repo.saved["u2"].AttendanceRate)
	assert.Empty(t, logs.entries, "no session means no admin log")
}

func TestRefreshMonth_PastMonthUsesFullMonth(t *testing.T) {
	svc, repo, _ := newTestService(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	repo.totals = []performance.UserMonthTotals{{UserID: "u1", TotalMinutes: 60, DutyDays: 14}}

	_, err := svc.RefreshMonth(context.Background(), 2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 5000, repo.saved["u1"].AttendanceRate)
}

func TestRefreshMonth_Rejections(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	_, err := svc.RefreshMonth(context.Background(), 2025, 4)
	assert.ErrorIs(t, err, performance.ErrFutureMonth)

	_, err = svc.RefreshMonth(context.Background(), 2025, 13)
	assert.Error(t, err)
}

func TestRefreshMonth_AdminSessionIsLogged(t *testing.T) {
	svc, repo, logs := newTestService(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	repo.totals = []performance.UserMonthTotals{{UserID: "u1", TotalMinutes: 60, DutyDays: 1}}

	ctx := auth.WithSession(context.Background(), auth.Session{UserID: "admin", Rank: user.RankHRD})
	_, err := svc.RefreshMonth(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, adminlog.ActionRefreshMetrics, logs.entries[0].Action)
	assert.Nil(t, logs.entries[0].TargetID)
}

func TestListMine(t *testing.T) {
	svc, repo, _ := newTestService(time.Now())
	repo.saved["u1"] = performance.Metric{UserID: "u1", Year: 2025, Month: 1, TotalMinutes: 90, AttendanceRate: 2500}

	year := 2025
	metrics, err := svc.ListMine(context.Background(), "u1", &year)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "2025-01", metrics[0].Period)
	assert.Equal(t, 25.0, metrics[0].AttendanceRate)

	other := 2024
	metrics, err = svc.ListMine(context.Background(), "u1", &other)
	require.NoError(t, err)
	assert.Empty(t, metrics)
}
