package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// Decide sets the final status only while the request is still pending
	Decide(ctx context.Context, id string, status LeaveRequestStatus, approverID string, decidedAt time.Time, rejectionReason *string) (LeaveRequest, error)
}
