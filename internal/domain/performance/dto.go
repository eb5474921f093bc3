package performance

import (
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/pkg/utils"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
)

type MetricResponse struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	Period           string  `json:"period"` // YYYY-MM
	TotalMinutes     int64   `json:"total_minutes"`
	TotalHours       string  `json:"total_hours"`
	AttendanceRate   float64 `json:"attendance_rate"`
	PunctualityScore float64 `json:"punctuality_score"`
	TotalCalls       int     `json:"total_calls"`
	Rating           float64 `json:"rating"`
}

func ToResponse(m Metric) MetricResponse {
	return MetricResponse{
		Year:             m.Year,
		Month:            m.Month,
		Period:           fmt.Sprintf("%04d-%02d", m.Year, m.Month),
		TotalMinutes:     m.TotalMinutes,
		TotalHours:       utils.FormatDuration(m.TotalMinutes),
		AttendanceRate:   float64(m.AttendanceRate) / 100,
		PunctualityScore: float64(m.PunctualityScore) / 100,
		TotalCalls:       m.TotalCalls,
		Rating:           float64(m.Rating) / 100,
	}
}

type RefreshRequest struct {
	Month string `json:"month"` // YYYY-MM, empty means current month
}

func (r *RefreshRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Month) {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshResponse struct {
	Period       string `json:"period"`
	UsersUpdated int    `json:"users_updated"`
}
