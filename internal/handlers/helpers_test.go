package handlers

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"uplift-backend/internal/feedback"
	"uplift-backend/internal/middleware"
	"uplift-backend/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type memoryDirectory struct {
	users map[string]*models.User
}

func newMemoryDirectory(users ...models.User) *memoryDirectory {
	d := &memoryDirectory{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		d.users[u.ID] = &u
	}
	return d
}

func (d *memoryDirectory) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (d *memoryDirectory) ListUsers(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *memoryDirectory) ListByManager(_ context.Context, managerID string) ([]models.User, error) {
	var out []models.User
	for _, u := range d.users {
		if u.ManagerID == managerID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *memoryDirectory) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range d.users {
		if u.Email == user.Email {
			return models.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = "u-" + user.Email
	}
	copied := *user
	d.users[user.ID] = &copied
	return nil
}

func (d *memoryDirectory) DeleteUser(_ context.Context, id string) error {
	user, ok := d.users[id]
	if !ok {
		return models.ErrUnknownUser
	}
	if user.Role == models.RoleAdmin {
		admins := 0
		for _, u := range d.users {
			if u.Role == models.RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return models.ErrLastAdmin
		}
	}
	delete(d.users, id)
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, string) error { return nil }

// --- Helpers ---

func newTestStore(t *testing.T, dir feedback.Directory) *feedback.Store {
	t.Helper()
	store, err := feedback.Open(context.Background(), feedback.NewMemoryPersistence(), dir, clockwork.NewFakeClock())
	require.NoError(t, err)
	return store
}

// asIdentity injects authenticated identity claims, standing in for the
// JWT middleware in handler tests.
func asIdentity(userID string, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithIdentity(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
