package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
)

const (
	botActionLeaderboard   = "leaderboard"
	botActionActiveMembers = "active_members"
	botLeaderboardLimit    = 10
)

// BotHandler serves the Discord bot. Callers are authenticated by
// middleware.BotTokenRequired, not by a user session.
type BotHandler interface {
	Action(w http.ResponseWriter, r *http.Request)
	Query(w http.ResponseWriter, r *http.Request)
}

type botHandlerImpl struct {
	userService       user.UserService
	attendanceService attendance.AttendanceService
	dashboardService  dashboard.DashboardService
}

func NewBotHandler(userService user.UserService, attendanceService attendance.AttendanceService, dashboardService dashboard.DashboardService) BotHandler {
	return &botHandlerImpl{
		userService:       userService,
		attendanceService: attendanceService,
		dashboardService:  dashboardService,
	}
}

func mention(discordID string) string {
	return fmt.Sprintf("<@%s>", discordID)
}

// Action implements BotHandler.
func (h *botHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	var req attendance.BotActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bot action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	member, err := h.userService.EnsureByDiscordID(r.Context(), req.DiscordID, req.Username)
	if err != nil {
		slog.Error("Bot failed to resolve member", "error", err, "discord_id", req.DiscordID)
		response.HandleError(w, err)
		return
	}

	switch req.Action {
	case attendance.ActionClockIn:
		result, err := h.attendanceService.ClockIn(r.Context(), member.ID)
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			response.Declined(w, mention(req.DiscordID)+" is already on duty", map[string]bool{"already_clocked_in": true})
			return
		}
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, mention(req.DiscordID)+" is now on duty", result)

	case attendance.ActionClockOut:
		result, err := h.attendanceService.ClockOut(r.Context(), member.ID)
		if errors.Is(err, attendance.ErrNotClockedIn) {
			response.Declined(w, mention(req.DiscordID)+" is not on duty", map[string]bool{"not_clocked_in": true})
			return
		}
		if err != nil {
			response.HandleError(w, err)
			return
		}
		message := fmt.Sprintf("%s is now off duty. Shift duration: **%s**", mention(req.DiscordID), result.DurationFormatted)
		response.SuccessWithMessage(w, message, result)

	case attendance.ActionStatus:
		status, err := h.attendanceService.GetStatus(r.Context(), member.ID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Status for "+mention(req.DiscordID), status)
	}
}

// Query implements BotHandler.
func (h *botHandlerImpl) Query(w http.ResponseWriter, r *http.Request) {
	switch action := r.URL.Query().Get("action"); action {
	case botActionLeaderboard:
		entries, err := h.dashboardService.Leaderboard(r.Context(), botLeaderboardLimit)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, map[string]interface{}{"leaderboard": entries})

	case botActionActiveMembers:
		roster, err := h.dashboardService.ActiveRoster(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, map[string]interface{}{
			"active_members": roster.Members,
			"count":          roster.Count,
		})

	default:
		response.BadRequest(w, `Invalid action. Use "leaderboard" or "active_members"`, nil)
	}
}
