package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uplift-backend/internal/feedback"
	"uplift-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsRouter(h *StatsHandler, callerID string, role models.Role) http.Handler {
	r := chi.NewRouter()
	r.Use(asIdentity(callerID, role))
	r.Get("/stats/user/{userID}", h.UserStats)
	r.Get("/stats/team/{managerID}", h.TeamStats)
	r.Get("/stats/organization", h.OrganizationStats)
	return r
}

func seededStatsHandler(t *testing.T) *StatsHandler {
	t.Helper()
	dir := newMemoryDirectory(
		models.User{ID: "alice", Role: models.RoleUser, Department: "Engineering", ManagerID: "mia"},
		models.User{ID: "bob", Role: models.RoleUser, Department: "Sales", ManagerID: "mia"},
		models.User{ID: "mia", Role: models.RoleManager, Department: "Engineering"},
	)
	store := newTestStore(t, dir)
	ctx := context.Background()

	_, err := store.Add(ctx, models.TypeConsider, "Communication", "alice", "bob", "terrible handoff")
	require.NoError(t, err)
	_, err = store.Add(ctx, models.TypeContinue, "Customer Impact", "mia", "alice", "great save")
	require.NoError(t, err)
	return NewStatsHandler(store)
}

func TestUserStatsEndpoint(t *testing.T) {
	h := seededStatsHandler(t)
	router := statsRouter(h, "alice", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/stats/user/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats feedback.UserStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.ConsiderGiven)
	assert.Equal(t, 1, stats.ContinueReceived)
	// round((1*10 + 1*5) / 2) = 8
	assert.Equal(t, 8, stats.EngagementScore)
}

func TestUserStatsForbiddenForOtherPlainUser(t *testing.T) {
	h := seededStatsHandler(t)
	router := statsRouter(h, "bob", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/stats/user/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTeamStatsRoleGating(t *testing.T) {
	h := seededStatsHandler(t)

	t.Run("manager views own team", func(t *testing.T) {
		router := statsRouter(h, "mia", models.RoleManager)
		req := httptest.NewRequest(http.MethodGet, "/stats/team/mia", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var stats feedback.TeamStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 0, stats.TotalFeedbacks)
		assert.Equal(t, 1, stats.TotalAppreciations)
		assert.Len(t, stats.MemberStats, 2)
	})

	t.Run("manager cannot view another team", func(t *testing.T) {
		router := statsRouter(h, "mia", models.RoleManager)
		req := httptest.NewRequest(http.MethodGet, "/stats/team/other", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		router := statsRouter(h, "alice", models.RoleUser)
		req := httptest.NewRequest(http.MethodGet, "/stats/team/mia", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin views any team", func(t *testing.T) {
		router := statsRouter(h, "root", models.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/stats/team/mia", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOrganizationStatsAdminOnly(t *testing.T) {
	h := seededStatsHandler(t)

	t.Run("admin", func(t *testing.T) {
		router := statsRouter(h, "root", models.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/stats/organization", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var stats feedback.OrganizationStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.TotalFeedbacks)
		assert.Equal(t, 1, stats.TotalAppreciations)
		require.Len(t, stats.DepartmentStats, 4)
		// bob is in Sales, alice in Engineering
		assert.Equal(t, 1, stats.DepartmentStats["Sales"].Feedbacks)
		assert.Equal(t, 1, stats.DepartmentStats["Engineering"].Appreciations)
	})

	t.Run("manager forbidden", func(t *testing.T) {
		router := statsRouter(h, "mia", models.RoleManager)
		req := httptest.NewRequest(http.MethodGet, "/stats/organization", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
