package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	EditAttendance(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	userService       user.UserService
	attendanceService attendance.AttendanceService
	adminLogService   adminlog.AdminLogService
}

func NewAdminHandler(userService user.UserService, attendanceService attendance.AttendanceService, adminLogService adminlog.AdminLogService) AdminHandler {
	return &adminHandlerImpl{
		userService:       userService,
		attendanceService: attendanceService,
		adminLogService:   adminLogService,
	}
}

// ListUsers implements AdminHandler.
func (h *adminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.ListUserFilter{
		Limit:  queryInt(r, "limit", 20),
		Offset: queryInt(r, "offset", 0),
	}

	result, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Users, response.NewMeta(result.Limit, result.Offset, result.TotalCount))
}

// UpdateUser implements AdminHandler.
func (h *adminHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.userService.UpdateUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", result)
}

// EditAttendance implements AdminHandler.
func (h *adminHandlerImpl) EditAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.EditAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// ListLogs implements AdminHandler.
func (h *adminHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := adminlog.ListAdminLogFilter{
		AdminID: queryStringPtr(r, "admin_id"),
		Action:  queryStringPtr(r, "action"),
		Limit:   queryInt(r, "limit", 100),
		Offset:  queryInt(r, "offset", 0),
	}

	result, err := h.adminLogService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, response.NewMeta(result.Limit, result.Offset, result.TotalCount))
}
