package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"uplift-backend/internal/middleware"
	"uplift-backend/internal/models"
	"uplift-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	directory Directory
}

func NewUserHandler(directory Directory) *UserHandler {
	return &UserHandler{directory: directory}
}

// --- GET /user/me ---

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := h.directory.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Msg("finding user")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// --- GET /users ---

// ListUsers returns the directory, optionally filtered to one
// manager's direct reports via ?managerId=. Any authenticated user may
// list: the frontend needs it for recipient pickers.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		users []models.User
		err   error
	)
	if managerID := r.URL.Query().Get("managerId"); managerID != "" {
		users, err = h.directory.ListByManager(r.Context(), managerID)
	} else {
		users, err = h.directory.ListUsers(r.Context())
	}
	if err != nil {
		logger.Error().Err(err).Msg("listing users")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

type CreateUserRequest struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	ManagerID  string      `json:"managerId"`
	TeamID     string      `json:"teamId"`
	Department string      `json:"department"`
}

// --- POST /users ---

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}
	if req.Department != "" && !models.ValidDepartment(req.Department) {
		writeError(w, http.StatusBadRequest, "unknown department")
		return
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
		TeamID:     req.TeamID,
		Department: req.Department,
	}
	if err := h.directory.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		logger.Error().Err(err).Msg("creating user")
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// --- DELETE /users/{userID} ---

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}

	userID := chi.URLParam(r, "userID")
	err := h.directory.DeleteUser(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
	case errors.Is(err, models.ErrLastAdmin):
		writeError(w, http.StatusConflict, "cannot delete the last admin user")
	case errors.Is(err, models.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		logger.Error().Err(err).Msg("deleting user")
		writeError(w, http.StatusInternalServerError, "failed to delete user")
	}
}
