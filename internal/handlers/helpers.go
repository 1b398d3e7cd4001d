package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"uplift-backend/internal/middleware"
	"uplift-backend/internal/models"
)

// Directory is the user-directory surface the handlers need. The Mongo
// repository implements it; tests use an in-memory fake.
type Directory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListByManager(ctx context.Context, managerID string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}

// canViewUser reports whether the caller may read another user's
// feedback lists and stats: their own, or any when they hold the
// manager or admin role.
func canViewUser(ctx context.Context, targetID string) bool {
	if middleware.GetUserID(ctx) == targetID {
		return true
	}
	role := middleware.GetRole(ctx)
	return role == models.RoleManager || role == models.RoleAdmin
}
