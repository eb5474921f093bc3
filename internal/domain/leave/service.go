package leave

import "context"

type LeaveService interface {
	// Create submits a leave request for userID
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, userID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	// List returns every user's requests (admin)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Approve(ctx context.Context, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id string, req RejectLeaveRequest) (LeaveRequestResponse, error)
}
