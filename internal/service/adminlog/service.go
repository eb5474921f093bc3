package adminlog

import (
	"context"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
)

type AdminLogServiceImpl struct {
	adminlog.AdminLogRepository
}

func NewAdminLogService(repo adminlog.AdminLogRepository) adminlog.AdminLogService {
	return &AdminLogServiceImpl{AdminLogRepository: repo}
}

// List implements adminlog.AdminLogService.
func (s *AdminLogServiceImpl) List(ctx context.Context, filter adminlog.ListAdminLogFilter) (adminlog.ListAdminLogResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return adminlog.ListAdminLogResponse{}, err
	}

	filter.Normalize()

	logs, total, err := s.AdminLogRepository.List(ctx, filter)
	if err != nil {
		return adminlog.ListAdminLogResponse{}, fmt.Errorf("failed to list admin logs: %w", err)
	}

	responses := make([]adminlog.AdminLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, adminlog.ToResponse(l))
	}

	return adminlog.ListAdminLogResponse{
		Logs:       responses,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}
