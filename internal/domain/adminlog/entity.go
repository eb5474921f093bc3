package adminlog

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionUpdateUser       Action = "update_user"
	ActionUpdateAttendance Action = "update_attendance"
	ActionApproveLeave     Action = "approve_leave"
	ActionRejectLeave      Action = "reject_leave"
	ActionRefreshMetrics   Action = "refresh_performance"
)

type TargetType string

const (
	TargetUsers              TargetType = "users"
	TargetAttendance         TargetType = "attendance"
	TargetLeaveRequests      TargetType = "leave_requests"
	TargetPerformanceMetrics TargetType = "performance_metrics"
)

// AdminLog is one audit trail entry for an admin action.
type AdminLog struct {
	ID         string
	AdminID    string
	Action     Action
	TargetID   *string
	TargetType *TargetType
	Details    json.RawMessage
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}
