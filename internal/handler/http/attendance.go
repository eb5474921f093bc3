package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Action(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Action implements AttendanceHandler.
func (h *attendanceHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Attendance action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	switch req.Action {
	case attendance.ActionClockIn:
		result, err := h.attendanceService.ClockIn(r.Context(), session.UserID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Created(w, "Clocked in successfully", result)
	case attendance.ActionClockOut:
		result, err := h.attendanceService.ClockOut(r.Context(), session.UserID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Clocked out successfully", result)
	}
}

// Overview implements AttendanceHandler.
func (h *attendanceHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.HistoryFilter{
		Limit:  queryInt(r, "limit", 10),
		Offset: queryInt(r, "offset", 0),
	}

	result, err := h.attendanceService.GetOverview(r.Context(), session.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetSummary(r.Context(), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
