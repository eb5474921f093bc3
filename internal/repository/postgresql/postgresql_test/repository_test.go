package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/leave"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	users       user.UserRepository
	attendance  attendance.AttendanceRepository
	dashboard   dashboard.DashboardRepository
	leave       leave.LeaveRequestRepository
	performance performance.MetricRepository
	adminLogs   adminlog.AdminLogRepository
	tx          database.Transactor
}

func TestUserRepository_UpsertKeepsIdentity(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()

	created := seedUser(t, r.users, "medic")
	assert.Equal(t, user.RankTrainee, created.Rank)
	assert.True(t, created.IsActive)
	assert.Zero(t, created.TotalMinutes)

	again, err := r.users.Upsert(ctx, user.User{
		DiscordID:   created.DiscordID,
		Username:    "medic_renamed",
		DisplayName: "Medic",
		Rank:        user.RankTrainee,
		Department:  user.DepartmentEMS,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "medic_renamed", again.Username)

	byDiscord, err := r.users.GetByDiscordID(ctx, created.DiscordID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byDiscord.ID)

	_, err = r.users.GetByDiscordID(ctx, "999999999999999999")
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestUserRepository_UpdateAndAddMinutes(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()

	u := seedUser(t, r.users, "medic")
	name := "Dr. Medic"
	u.CustomName = &name
	u.Rank = user.RankDokterUmum
	u.IsWebAdmin = true

	updated, err := r.users.Update(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Medic", updated.EffectiveName())
	assert.True(t, updated.IsAdmin())

	total, err := r.users.AddMinutes(ctx, u.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(90), total)

	total, err = r.users.AddMinutes(ctx, u.ID, -30)
	require.NoError(t, err)
	assert.Equal(t, int64(60), total)

	list, count, err := r.users.List(ctx, user.ListUserFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, list, 1)
}

func TestAttendanceRepository_SingleOpenShift(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()
	u := seedUser(t, r.users, "medic")

	open, err := r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 1, 8, 8)})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusActive, open.Status)

	_, err = r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 1, 8, 9)})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	active, err := r.attendance.GetActiveByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, active.ID)

	done, err := r.attendance.Complete(ctx, open.ID, day(2025, 1, 8, 10), 120)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCompleted, done.Status)
	require.NotNil(t, done.Duration)
	assert.Equal(t, int64(120), *done.Duration)

	_, err = r.attendance.Complete(ctx, open.ID, day(2025, 1, 8, 11), 180)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))

	_, err = r.attendance.GetActiveByUserID(ctx, u.ID)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))

	// a new shift is allowed once the previous one is closed
	_, err = r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 1, 9, 8)})
	require.NoError(t, err)
}

func TestAttendanceRepository_HistoryAndSum(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()
	u := seedUser(t, r.users, "medic")

	for i, d := range []int{6, 7, 8} {
		a, err := r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 1, d, 8)})
		require.NoError(t, err)
		_, err = r.attendance.Complete(ctx, a.ID, day(2025, 1, d, 9), int64(60*(i+1)))
		require.NoError(t, err)
	}

	history, err := r.attendance.ListByUserID(ctx, u.ID, attendance.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 8, history[0].ClockIn.UTC().Day())
	assert.Equal(t, 7, history[1].ClockIn.UTC().Day())

	sum, err := r.attendance.SumCompletedMinutes(ctx, u.ID, day(2025, 1, 7, 0), day(2025, 1, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(120+180), sum)
}

func TestDashboardRepository(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()

	a := seedUser(t, r.users, "a")
	b := seedUser(t, r.users, "b")
	c := seedUser(t, r.users, "c")
	_, err := r.users.AddMinutes(ctx, a.ID, 30)
	require.NoError(t, err)
	_, err = r.users.AddMinutes(ctx, b.ID, 300)
	require.NoError(t, err)
	c.IsActive = false
	_, err = r.users.Update(ctx, c)
	require.NoError(t, err)
	_, err = r.users.AddMinutes(ctx, c.ID, 9000)
	require.NoError(t, err)

	board, err := r.dashboard.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, b.ID, board[0].UserID)
	assert.Equal(t, a.ID, board[1].UserID)

	_, err = r.attendance.Create(ctx, attendance.Attendance{UserID: a.ID, DiscordID: a.DiscordID, ClockIn: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	roster, err := r.dashboard.GetActiveRoster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, a.ID, roster[0].UserID)

	stats, err := r.dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.CurrentlyOnDuty)
}

func TestLeaveRequestRepository_DecideOnce(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()
	member := seedUser(t, r.users, "member")
	admin := seedUser(t, r.users, "admin")

	created, err := r.leave.Create(ctx, leave.LeaveRequest{
		UserID:    member.ID,
		StartDate: day(2025, 2, 1, 0),
		EndDate:   day(2025, 2, 3, 0),
		Reason:    "flu",
		Type:      leave.LeaveTypeSick,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	require.NotNil(t, created.Username)
	assert.Equal(t, "member", *created.Username)

	approved, err := r.leave.Decide(ctx, created.ID, leave.LeaveRequestStatusApproved, admin.ID, time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)

	reason := "too late"
	_, err = r.leave.Decide(ctx, created.ID, leave.LeaveRequestStatusRejected, admin.ID, time.Now(), &reason)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	pending := string(leave.LeaveRequestStatusPending)
	list, total, err := r.leave.List(ctx, leave.LeaveRequestFilter{Status: &pending, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestPerformanceRepository_AggregateAndUpsert(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()
	u := seedUser(t, r.users, "medic")
	idle := seedUser(t, r.users, "idle")

	// two shifts on the same day count as one duty day
	for _, h := range []int{8, 14} {
		a, err := r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 3, 3, h)})
		require.NoError(t, err)
		_, err = r.attendance.Complete(ctx, a.ID, day(2025, 3, 3, h+2), 120)
		require.NoError(t, err)
	}
	a, err := r.attendance.Create(ctx, attendance.Attendance{UserID: u.ID, DiscordID: u.DiscordID, ClockIn: day(2025, 3, 5, 8)})
	require.NoError(t, err)
	_, err = r.attendance.Complete(ctx, a.ID, day(2025, 3, 5, 9), 60)
	require.NoError(t, err)

	totals, err := r.performance.AggregateMonth(ctx, day(2025, 3, 1, 0), day(2025, 4, 1, 0), time.UTC)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byUser := map[string]performance.UserMonthTotals{}
	for _, tt := range totals {
		byUser[tt.UserID] = tt
	}
	assert.Equal(t, int64(300), byUser[u.ID].TotalMinutes)
	assert.Equal(t, 2, byUser[u.ID].DutyDays)
	assert.Zero(t, byUser[idle.ID].TotalMinutes)

	m, err := r.performance.Upsert(ctx, performance.Metric{UserID: u.ID, Year: 2025, Month: 3, TotalMinutes: 300, AttendanceRate: 645})
	require.NoError(t, err)
	_, err = r.performance.Upsert(ctx, performance.Metric{UserID: u.ID, Year: 2025, Month: 3, TotalMinutes: 360, AttendanceRate: 700})
	require.NoError(t, err)

	year := 2025
	metrics, err := r.performance.ListByUser(ctx, u.ID, &year)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, m.ID, metrics[0].ID)
	assert.Equal(t, int64(360), metrics[0].TotalMinutes)
	assert.Equal(t, 700, metrics[0].AttendanceRate)
}

func TestAdminLogRepository(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := adminlog.WithRequestMeta(context.Background(), adminlog.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
	admin := seedUser(t, r.users, "admin")
	target := seedUser(t, r.users, "target")

	entry := adminlog.NewEntry(ctx, admin.ID, adminlog.ActionUpdateUser, adminlog.TargetUsers, target.ID, map[string]string{"rank": "Perawat"})
	saved, err := r.adminLogs.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	_, err = r.adminLogs.Create(ctx, adminlog.NewEntry(ctx, admin.ID, adminlog.ActionRefreshMetrics, adminlog.TargetPerformanceMetrics, "", nil))
	require.NoError(t, err)

	action := string(adminlog.ActionUpdateUser)
	logs, total, err := r.adminLogs.List(ctx, adminlog.ListAdminLogFilter{Action: &action, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.JSONEq(t, `{"rank":"Perawat"}`, string(logs[0].Details))
	require.NotNil(t, logs[0].IPAddress)
	assert.Equal(t, "10.0.0.1", *logs[0].IPAddress)
}

func TestTransactor_RollsBack(t *testing.T) {
	r := newRepos(openTestDB(t))
	ctx := context.Background()
	u := seedUser(t, r.users, "medic")

	boom := errors.New("boom")
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.users.AddMinutes(ctx, u.ID, 500); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	fresh, err := r.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.TotalMinutes)
}
