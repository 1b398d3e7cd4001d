package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uplift-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, gotUserID *string, gotRole *models.Role) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = GetUserID(r.Context())
		*gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(testSecret)(next)
}

func TestJWTAuthValidToken(t *testing.T) {
	var userID string
	var role models.Role
	handler := protectedHandler(t, &userID, &role)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "manager",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, models.RoleManager, role)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	var userID string
	var role models.Role
	handler := protectedHandler(t, &userID, &role)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	var userID string
	var role models.Role
	handler := protectedHandler(t, &userID, &role)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	var userID string
	var role models.Role
	handler := protectedHandler(t, &userID, &role)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMissingUserIDClaim(t *testing.T) {
	var userID string
	var role models.Role
	handler := protectedHandler(t, &userID, &role)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
