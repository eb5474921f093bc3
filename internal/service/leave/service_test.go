package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/leave"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	req.ID = uuid.Must(uuid.NewV7()).String()
	req.Status = leave.LeaveRequestStatusPending
	req.CreatedAt = time.Now()
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.LeaveRequest{}, fmt.Errorf("leave request %s: %w", id, pgx.ErrNoRows)
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	total := int64(len(out))
	if filter.Offset >= len(out) {
		return []leave.LeaveRequest{}, total, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeLeaveRepo) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, approverID string, decidedAt time.Time, rejectionReason *string) (leave.LeaveRequest, error) {
	for i, r := range f.requests {
		if r.ID == id && r.IsPending() {
			r.Status = status
			r.ApprovedBy = &approverID
			r.ApprovedAt = &decidedAt
			r.RejectionReason = rejectionReason
			f.requests[i] = r
			return r, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
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

func newTestService() (leave.LeaveService, *fakeLeaveRepo, *fakeAdminLogRepo) {
	repo := &fakeLeaveRepo{}
	logs := &fakeAdminLogRepo{}
	return NewLeaveService(fakeTx{}, repo, logs), repo, logs
}

func adminCtx() context.Context {
	return auth.WithSession(context.Background(), auth.Session{UserID: uuid.Must(uuid.NewV7()).String(), Rank: user.RankWakdir})
}

func validRequest() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{StartDate: "2025-02-01", EndDate: "2025-02-03", Reason: "flu", Type: "sick"}
}

func TestCreateAndListMine(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-a", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3, created.Days)

	_, err = svc.Create(ctx, "user-b", validRequest())
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user-a", leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.TotalCount)
	assert.Equal(t, 10, mine.Limit)
	assert.False(t, mine.HasMore)
}

func TestCreate_Invalid(t *testing.T) {
	svc, repo, _ := newTestService()

	req := validRequest()
	req.EndDate = "2025-01-01"
	_, err := svc.Create(context.Background(), "user-a", req)
	assert.Error(t, err)
	assert.Empty(t, repo.requests)
}

func TestApprove(t *testing.T) {
	svc, _, logs := newTestService()
	created, err := svc.Create(context.Background(), "user-a", validRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(adminCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.NotNil(t, approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, adminlog.ActionApproveLeave, logs.entries[0].Action)

	_, err = svc.Reject(adminCtx(), created.ID, leave.RejectLeaveRequest{Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	assert.Len(t, logs.entries, 1)
}

func TestReject(t *testing.T) {
	svc, _, logs := newTestService()
	created, err := svc.Create(context.Background(), "user-a", validRequest())
	require.NoError(t, err)

	_, err = svc.Reject(adminCtx(), created.ID, leave.RejectLeaveRequest{})
	assert.Error(t, err)

	rejected, err := svc.Reject(adminCtx(), created.ID, leave.RejectLeaveRequest{Reason: "staffing"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "staffing", *rejected.RejectionReason)
	assert.Equal(t, adminlog.ActionRejectLeave, logs.entries[0].Action)
}

func TestDecide_Guards(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), "user-a", validRequest())
	require.NoError(t, err)

	member := auth.WithSession(context.Background(), auth.Session{UserID: "user-a", Rank: user.RankPerawat})
	_, err = svc.Approve(member, created.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.List(member, leave.LeaveRequestFilter{})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.Approve(adminCtx(), uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestList_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	first, err := svc.Create(ctx, "user-a", validRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-b", validRequest())
	require.NoError(t, err)
	_, err = svc.Approve(adminCtx(), first.ID)
	require.NoError(t, err)

	pending := "pending"
	resp, err := svc.List(adminCtx(), leave.LeaveRequestFilter{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, "user-b", resp.LeaveRequests[0].UserID)

	bad := "archived"
	_, err = svc.List(adminCtx(), leave.LeaveRequestFilter{Status: &bad})
	assert.Error(t, err)
}
