package http

import (
	"context"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/leave"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"golang.org/x/oauth2"
)

type fakeAttendanceService struct {
	onDuty    map[string]bool
	lastEdit  attendance.EditAttendanceRequest
	lastLimit int
}

func newFakeAttendanceService() *fakeAttendanceService {
	return &fakeAttendanceService{onDuty: make(map[string]bool)}
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	if f.onDuty[userID] {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	f.onDuty[userID] = true
	return attendance.AttendanceResponse{UserID: userID, Status: "active"}, nil
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, userID string) (attendance.ClockOutResponse, error) {
	if !f.onDuty[userID] {
		return attendance.ClockOutResponse{}, attendance.ErrNotClockedIn
	}
	f.onDuty[userID] = false
	return attendance.ClockOutResponse{
		Attendance:        attendance.AttendanceResponse{UserID: userID, Status: "completed"},
		Duration:          125,
		DurationFormatted: "2h 5m",
		TotalMinutes:      125,
	}, nil
}

func (f *fakeAttendanceService) GetActiveShift(ctx context.Context, userID string) (*attendance.AttendanceResponse, error) {
	if !f.onDuty[userID] {
		return nil, nil
	}
	return &attendance.AttendanceResponse{UserID: userID, Status: "active"}, nil
}

func (f *fakeAttendanceService) GetStatus(ctx context.Context, userID string) (attendance.StatusResponse, error) {
	active, _ := f.GetActiveShift(ctx, userID)
	return attendance.StatusResponse{OnDuty: active != nil, ActiveShift: active}, nil
}

func (f *fakeAttendanceService) GetHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	return []attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) GetOverview(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.OverviewResponse, error) {
	f.lastLimit = filter.Limit
	return attendance.OverviewResponse{
		User:    user.UserResponse{ID: userID},
		History: []attendance.AttendanceResponse{},
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (f *fakeAttendanceService) GetSummary(ctx context.Context, userID string) (attendance.SummaryResponse, error) {
	return attendance.SummaryResponse{WeeklyMinutes: 60, WeeklyHours: "1h 0m"}, nil
}

func (f *fakeAttendanceService) EditAttendance(ctx context.Context, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	f.lastEdit = req
	return attendance.AttendanceResponse{ID: req.ID}, nil
}

type fakeDashboardService struct {
	err error
}

func (f *fakeDashboardService) Leaderboard(ctx context.Context, limit int) ([]dashboard.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entries := make([]dashboard.LeaderboardEntry, 0, limit)
	for i := 1; i <= limit && i <= 3; i++ {
		entries = append(entries, dashboard.LeaderboardEntry{Position: i})
	}
	return entries, nil
}

func (f *fakeDashboardService) ActiveRoster(ctx context.Context) (*dashboard.RosterResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.RosterResponse{
		Members: []dashboard.RosterMember{{Username: "medic", ElapsedMinutes: 30, Elapsed: "0h 30m"}},
		Count:   1,
	}, nil
}

func (f *fakeDashboardService) Stats(ctx context.Context) (*dashboard.StatsResponse, error) {
	return &dashboard.StatsResponse{}, f.err
}

func (f *fakeDashboardService) Overview(ctx context.Context) (*dashboard.OverviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.OverviewResponse{Leaderboard: []dashboard.LeaderboardEntry{}}, nil
}

type fakeLeaveService struct {
	created []leave.CreateLeaveRequest
}

func (f *fakeLeaveService) Create(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	f.created = append(f.created, req)
	return leave.LeaveRequestResponse{UserID: userID, Status: "pending"}, nil
}

func (f *fakeLeaveService) ListMine(ctx context.Context, userID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	return leave.ListLeaveRequestResponse{LeaveRequests: []leave.LeaveRequestResponse{}, Limit: 10}, nil
}

func (f *fakeLeaveService) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	return leave.ListLeaveRequestResponse{LeaveRequests: []leave.LeaveRequestResponse{}, Limit: 10}, nil
}

func (f *fakeLeaveService) Approve(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (f *fakeLeaveService) Reject(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.LeaveRequestResponse{ID: id, Status: "rejected"}, nil
}

type fakePerformanceService struct {
	year, month int
}

func (f *fakePerformanceService) ListMine(ctx context.Context, userID string, year *int) ([]performance.MetricResponse, error) {
	return []performance.MetricResponse{}, nil
}

func (f *fakePerformanceService) RefreshMonth(ctx context.Context, year, month int) (performance.RefreshResponse, error) {
	f.year, f.month = year, month
	return performance.RefreshResponse{UsersUpdated: 2}, nil
}

type fakeUserService struct {
	byDiscord map[string]user.User
}

func (f *fakeUserService) LoginOrCreate(ctx context.Context, req user.LoginOrCreateRequest) (user.User, error) {
	return user.User{ID: "u-" + req.DiscordID, DiscordID: req.DiscordID, Username: req.Username}, nil
}

func (f *fakeUserService) EnsureByDiscordID(ctx context.Context, discordID string, username string) (user.User, error) {
	if u, ok := f.byDiscord[discordID]; ok {
		return u, nil
	}
	u := user.User{ID: "u-" + discordID, DiscordID: discordID, Username: username}
	f.byDiscord[discordID] = u
	return u, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return user.UserResponse{ID: id}, nil
}

func (f *fakeUserService) List(ctx context.Context, filter user.ListUserFilter) (user.ListUserResponse, error) {
	return user.ListUserResponse{Users: []user.UserResponse{}, Limit: filter.Limit}, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return user.UserResponse{}, err
	}
	return user.UserResponse{ID: req.ID}, nil
}

type fakeAdminLogService struct{}

func (fakeAdminLogService) List(ctx context.Context, filter adminlog.ListAdminLogFilter) (adminlog.ListAdminLogResponse, error) {
	return adminlog.ListAdminLogResponse{Logs: []adminlog.AdminLogResponse{}, Limit: filter.Limit}, nil
}

type fakeAuthService struct {
	botToken string
}

func (f *fakeAuthService) LoginWithDiscord(ctx context.Context, identity auth.DiscordIdentity) (auth.LoginResponse, error) {
	return auth.LoginResponse{Token: "session-token", ExpiresAt: 4102444800, User: user.UserResponse{ID: "u-" + identity.ID}}, nil
}

func (f *fakeAuthService) Me(ctx context.Context) (user.UserResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.UserResponse{ID: session.UserID, Username: session.Username}, nil
}

func (f *fakeAuthService) VerifyBotToken(token string) error {
	if token == "" || token != f.botToken {
		return auth.ErrInvalidBotToken
	}
	return nil
}

type fakeDiscordService struct{}

func (fakeDiscordService) GenerateState() (string, error) {
	return "state-123", nil
}

func (fakeDiscordService) RedirectURL(state string) string {
	return "https://discord.com/oauth2/authorize?state=" + state
}

func (fakeDiscordService) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func (fakeDiscordService) VerifyUser(ctx context.Context, token *oauth2.Token) (auth.DiscordIdentity, error) {
	return auth.DiscordIdentity{ID: "123456789012345678", Username: "medic"}, nil
}
