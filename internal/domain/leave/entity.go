package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeEmergency LeaveType = "emergency"
)

func ValidLeaveTypes() []string {
	return []string{string(LeaveTypeSick), string(LeaveTypeVacation), string(LeaveTypePersonal), string(LeaveTypeEmergency)}
}

// LeaveRequestStatus represents the approval state
type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func ValidStatuses() []string {
	return []string{string(LeaveRequestStatusPending), string(LeaveRequestStatusApproved), string(LeaveRequestStatusRejected)}
}

type LeaveRequest struct {
	ID              string
	UserID          string
	StartDate       time.Time
	EndDate         time.Time
	Reason          string
	Type            LeaveType
	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time

	// Join
	Username *string
}

func (l *LeaveRequest) IsPending() bool {
	return l.Status == LeaveRequestStatusPending
}

// Days counts calendar days including both ends
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
