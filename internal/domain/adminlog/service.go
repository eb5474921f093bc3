package adminlog

import "context"

type AdminLogService interface {
	List(ctx context.Context, filter ListAdminLogFilter) (ListAdminLogResponse, error)
}
