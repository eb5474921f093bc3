package http

import (
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/dashboard"
	"github.com/beyond-ems/ems-attendance-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Leaderboard(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// Leaderboard implements DashboardHandler.
func (h *dashboardHandlerImpl) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := dashboard.NormalizeLeaderboardLimit(queryInt(r, "limit", 10))

	entries, err := h.dashboardService.Leaderboard(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Roster implements DashboardHandler.
func (h *dashboardHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.dashboardService.ActiveRoster(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roster)
}

// Overview implements DashboardHandler.
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
