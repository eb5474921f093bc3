package attendance

import (
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"
	ActionStatus   = "status"
)

type ActionRequest struct {
	Action string `json:"action"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if !validator.IsInSlice(r.Action, []string{ActionClockIn, ActionClockOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be clock_in or clock_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BotActionRequest is the bot API body. The user is resolved by Discord ID.
type BotActionRequest struct {
	Action    string `json:"action"`
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
}

func (r *BotActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if !validator.IsInSlice(r.Action, []string{ActionClockIn, ActionClockOut, ActionStatus}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be clock_in, clock_out or status",
		})
	}

	if validator.IsEmpty(r.DiscordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "discord_id",
			Message: "discord_id is required",
		})
	} else if !validator.IsValidSnowflake(r.DiscordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "discord_id",
			Message: "discord_id must be a Discord snowflake",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	Limit  int
	Offset int
}

func (f *HistoryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// EditAttendanceRequest corrects the times of a shift. Times are RFC3339.
type EditAttendanceRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
}

func (r *EditAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ClockIn == nil && r.ClockOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in or clock_out is required",
		})
	}

	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimes returns the requested times; nil means keep current. Call after Validate.
func (r *EditAttendanceRequest) ParsedTimes() (clockIn *time.Time, clockOut *time.Time) {
	if r.ClockIn != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockIn); ok {
			clockIn = &t
		}
	}
	if r.ClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockOut); ok {
			clockOut = &t
		}
	}
	return clockIn, clockOut
}

type AttendanceResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"user_id"`
	DiscordID         string  `json:"discord_id"`
	ClockIn           string  `json:"clock_in"`
	ClockOut          *string `json:"clock_out"`
	Duration          *int64  `json:"duration"`
	DurationFormatted *string `json:"duration_formatted"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		DiscordID: a.DiscordID,
		ClockIn:   a.ClockIn.Format(time.RFC3339),
		Duration:  a.Duration,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
	if a.ClockOut != nil {
		s := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	if a.Duration != nil {
		s := utils.FormatDuration(*a.Duration)
		resp.DurationFormatted = &s
	}
	return resp
}

type ClockOutResponse struct {
	Attendance        AttendanceResponse `json:"attendance"`
	Duration          int64              `json:"duration"`
	DurationFormatted string             `json:"duration_formatted"`
	TotalMinutes      int64              `json:"total_minutes"`
}

type OverviewResponse struct {
	User        user.UserResponse    `json:"user"`
	ActiveShift *AttendanceResponse  `json:"active_shift"`
	History     []AttendanceResponse `json:"history"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	HasMore     bool                 `json:"has_more"`
}

// StatusResponse answers the bot "status" action
type StatusResponse struct {
	User           user.UserResponse   `json:"user"`
	OnDuty         bool                `json:"on_duty"`
	ActiveShift    *AttendanceResponse `json:"active_shift"`
	ElapsedMinutes int64               `json:"elapsed_minutes"`
	Elapsed        string              `json:"elapsed"`
}

type SummaryResponse struct {
	WeekStart      string `json:"week_start"`
	WeeklyMinutes  int64  `json:"weekly_minutes"`
	WeeklyHours    string `json:"weekly_hours"`
	MonthStart     string `json:"month_start"`
	MonthlyMinutes int64  `json:"monthly_minutes"`
	MonthlyHours   string `json:"monthly_hours"`
	TotalMinutes   int64  `json:"total_minutes"`
	TotalHours     string `json:"total_hours"`
}
