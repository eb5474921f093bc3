package attendance

// Duty event types pushed to live roster subscribers
const (
	EventClockIn  = "clock_in"
	EventClockOut = "clock_out"
	EventEdited   = "attendance_edited"
)

// DutyEvent announces a change in who is on duty.
type DutyEvent struct {
	Type         string `json:"type"`
	UserID       string `json:"user_id"`
	AttendanceID string `json:"attendance_id"`
	At           string `json:"at"`
	Duration     *int64 `json:"duration,omitempty"`
}

// DutyNotifier receives duty events after they are committed. Implementations
// must not block.
type DutyNotifier interface {
	NotifyDuty(event DutyEvent)
}
