package attendance

import (
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Attendance is one duty shift. An open shift has StatusActive and no ClockOut.
type Attendance struct {
	ID        string
	UserID    string
	DiscordID string
	ClockIn   time.Time
	ClockOut  *time.Time
	Duration  *int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Attendance) IsOpen() bool {
	return a.Status == StatusActive && a.ClockOut == nil
}

// ElapsedMinutes is derived at read time and never stored.
func (a *Attendance) ElapsedMinutes(now time.Time) int64 {
	return utils.DurationMinutes(a.ClockIn, now)
}
