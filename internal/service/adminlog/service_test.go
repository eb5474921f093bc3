package adminlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	logs       []adminlog.AdminLog
	lastFilter adminlog.ListAdminLogFilter
	err        error
}

func (f *fakeRepo) Create(ctx context.Context, entry adminlog.AdminLog) (adminlog.AdminLog, error) {
	f.logs = append(f.logs, entry)
	return entry, nil
}

func (f *fakeRepo) List(ctx context.Context, filter adminlog.ListAdminLogFilter) ([]adminlog.AdminLog, int64, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.logs, int64(len(f.logs)), nil
}

func adminCtx() context.Context {
	return auth.WithSession(context.Background(), auth.Session{UserID: "admin", Rank: user.RankDirektur})
}

func TestList(t *testing.T) {
	target := adminlog.TargetUsers
	repo := &fakeRepo{logs: []adminlog.AdminLog{{
		ID:         "log-1",
		AdminID:    "admin",
		Action:     adminlog.ActionUpdateUser,
		TargetType: &target,
		Details:    []byte(`{"rank":"HRD"}`),
		CreatedAt:  time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC),
	}}}
	svc := NewAdminLogService(repo)

	resp, err := svc.List(adminCtx(), adminlog.ListAdminLogFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.Limit)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "update_user", resp.Logs[0].Action)
	assert.Equal(t, "2025-01-08T08:00:00Z", resp.Logs[0].CreatedAt)
	require.NotNil(t, resp.Logs[0].TargetType)
	assert.Equal(t, "users", *resp.Logs[0].TargetType)
}

func TestList_RequiresAdmin(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAdminLogService(repo)

	_, err := svc.List(context.Background(), adminlog.ListAdminLogFilter{})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	member := auth.WithSession(context.Background(), auth.Session{UserID: "m", Rank: user.RankTrainee})
	_, err = svc.List(member, adminlog.ListAdminLogFilter{})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
	assert.Zero(t, repo.lastFilter.Limit)
}

func TestList_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAdminLogService(&fakeRepo{err: boom})

	_, err := svc.List(adminCtx(), adminlog.ListAdminLogFilter{})
	assert.ErrorIs(t, err, boom)
}
