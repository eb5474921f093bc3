package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/performance"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
)

type PerformanceHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
	loc                *time.Location
	now                func() time.Time
}

func NewPerformanceHandler(performanceService performance.PerformanceService, loc *time.Location) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: performanceService,
		loc:                loc,
		now:                time.Now,
	}
}

// ListMine implements PerformanceHandler.
func (h *performanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 9999 {
			response.HandleError(w, validator.ValidationErrors{
				{Field: "year", Message: "year must be a four digit number"},
			})
			return
		}
		year = &y
	}

	metrics, err := h.performanceService.ListMine(r.Context(), session.UserID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, metrics)
}

// Refresh implements PerformanceHandler. Without ?month the current month is
// recomputed.
func (h *performanceHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	req := performance.RefreshRequest{Month: r.URL.Query().Get("month")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	period := h.now().In(h.loc)
	if req.Month != "" {
		period, _ = validator.IsValidMonth(req.Month)
	}

	result, err := h.performanceService.RefreshMonth(r.Context(), period.Year(), int(period.Month()))
	if err != nil {
		slog.Error("Performance refresh error", "error", err, "month", req.Month)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Performance metrics refreshed", result)
}
