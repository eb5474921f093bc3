package adminlog

import "context"

type AdminLogRepository interface {
	Create(ctx context.Context, entry AdminLog) (AdminLog, error)
	List(ctx context.Context, filter ListAdminLogFilter) ([]AdminLog, int64, error)
}
