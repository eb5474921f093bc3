package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/leave"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	adminLogs adminlog.AdminLogRepository
	tx        database.Transactor
	now       func() time.Time
}

func NewLeaveService(tx database.Transactor, leaveRequestRepo leave.LeaveRequestRepository, adminLogRepo adminlog.AdminLogRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		adminLogs:              adminLogRepo,
		tx:                     tx,
		now:                    time.Now,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Type:      leave.LeaveType(req.Type),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, userID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.UserID = &userID
	return s.list(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.Normalize()

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		LeaveRequests: responses,
		TotalCount:    total,
		Limit:         filter.Limit,
		Offset:        filter.Offset,
		HasMore:       int64(filter.Offset+len(responses)) < total,
	}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, id, leave.LeaveRequestStatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return s.decide(ctx, id, leave.LeaveRequestStatusRejected, &req.Reason)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.LeaveRequestStatus, reason *string) (leave.LeaveRequestResponse, error) {
	session, err := auth.RequireAdmin(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !validator.IsValidUUID(id) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	action := adminlog.ActionApproveLeave
	if status == leave.LeaveRequestStatusRejected {
		action = adminlog.ActionRejectLeave
	}

	var decided leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.LeaveRequestRepository.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrLeaveRequestNotFound
			}
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if !current.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		decided, err = s.LeaveRequestRepository.Decide(txCtx, id, status, session.UserID, s.now().UTC(), reason)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
				return err
			}
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		details := map[string]any{"user_id": decided.UserID, "status": decided.Status}
		if reason != nil {
			details["reason"] = *reason
		}
		entry := adminlog.NewEntry(txCtx, session.UserID, action, adminlog.TargetLeaveRequests, decided.ID, details)
		if _, err := s.adminLogs.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write admin log: %w", err)
		}

		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(decided), nil
}
