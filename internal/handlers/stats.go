package handlers

import (
	"net/http"

	"uplift-backend/internal/feedback"
	"uplift-backend/internal/metrics"
	"uplift-backend/internal/middleware"
	"uplift-backend/internal/models"
	"uplift-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// StatsHandler serves the aggregate views. Every response is
// recomputed from the full feedback log at request time.
type StatsHandler struct {
	store *feedback.Store
}

func NewStatsHandler(store *feedback.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// --- GET /stats/user/{userID} ---

func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !canViewUser(r.Context(), userID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	metrics.StatsQueries.WithLabelValues("user").Inc()
	writeJSON(w, http.StatusOK, h.store.UserStats(userID))
}

// --- GET /stats/team/{managerID} ---

// Managers may query their own team; admins any team.
func (h *StatsHandler) TeamStats(w http.ResponseWriter, r *http.Request) {
	managerID := chi.URLParam(r, "managerID")

	role := middleware.GetRole(r.Context())
	switch role {
	case models.RoleAdmin:
	case models.RoleManager:
		if middleware.GetUserID(r.Context()) != managerID {
			writeError(w, http.StatusForbidden, "managers can only view their own team")
			return
		}
	default:
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	metrics.StatsQueries.WithLabelValues("team").Inc()
	writeJSON(w, http.StatusOK, h.store.TeamStats(managerID))
}

// --- GET /stats/organization ---

func (h *StatsHandler) OrganizationStats(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}

	stats, err := h.store.OrganizationStats(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("computing organization stats")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.StatsQueries.WithLabelValues("organization").Inc()
	writeJSON(w, http.StatusOK, stats)
}
