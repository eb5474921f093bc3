package user

import (
	"strings"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string  `json:"id"`
	DiscordID    string  `json:"discord_id"`
	Username     string  `json:"username"`
	DisplayName  string  `json:"display_name"`
	CustomName   *string `json:"custom_name"`
	Name         string  `json:"name"`
	Rank         string  `json:"rank"`
	Department   string  `json:"department"`
	IsWebAdmin   bool    `json:"is_web_admin"`
	IsAdmin      bool    `json:"is_admin"`
	IsActive     bool    `json:"is_active"`
	TotalMinutes int64   `json:"total_minutes"`
	TotalHours   string  `json:"total_hours"`
	JoinDate     string  `json:"join_date"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		DiscordID:    u.DiscordID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		CustomName:   u.CustomName,
		Name:         u.EffectiveName(),
		Rank:         string(u.Rank),
		Department:   string(u.Department),
		IsWebAdmin:   u.IsWebAdmin,
		IsAdmin:      u.IsAdmin(),
		IsActive:     u.IsActive,
		TotalMinutes: u.TotalMinutes,
		TotalHours:   utils.FormatDuration(u.TotalMinutes),
		JoinDate:     u.JoinDate.Format(time.RFC3339),
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}

// LoginOrCreateRequest carries the Discord identity of a signing-in member
type LoginOrCreateRequest struct {
	DiscordID   string `json:"discord_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (r *LoginOrCreateRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if len(r.Username) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must not exceed 100 characters",
		})
	}

	if len(r.DisplayName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest is the admin patch for a member. A nil field keeps its
// current value, except CustomName: nil or blank clears it.
type UpdateUserRequest struct {
	ID         string  `json:"-"`
	CustomName *string `json:"custom_name"`
	Rank       *string `json:"rank"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
	IsWebAdmin *bool   `json:"is_web_admin"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.CustomName != nil && len(strings.TrimSpace(*r.CustomName)) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_name",
			Message: "custom_name must not exceed 100 characters",
		})
	}

	if r.Rank != nil && !validator.IsEmpty(*r.Rank) && !validator.IsInSlice(*r.Rank, ValidRanks()) {
		errs = append(errs, validator.ValidationError{
			Field:   "rank",
			Message: "invalid rank",
		})
	}

	if r.Department != nil && !validator.IsEmpty(*r.Department) && !validator.IsInSlice(*r.Department, ValidDepartments()) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "invalid department",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the patch into u.
func (r *UpdateUserRequest) Apply(u User) User {
	u.CustomName = nil
	if r.CustomName != nil {
		if name := strings.TrimSpace(*r.CustomName); name != "" {
			u.CustomName = &name
		}
	}
	if r.Rank != nil && !validator.IsEmpty(*r.Rank) {
		u.Rank = Rank(*r.Rank)
	}
	if r.Department != nil && !validator.IsEmpty(*r.Department) {
		u.Department = Department(*r.Department)
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
	if r.IsWebAdmin != nil {
		u.IsWebAdmin = *r.IsWebAdmin
	}
	return u
}

type ListUserFilter struct {
	Limit  int
	Offset int
}

func (f *ListUserFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type ListUserResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}
