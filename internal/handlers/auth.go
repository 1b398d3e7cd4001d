package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"uplift-backend/internal/models"
	"uplift-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

type tokenStore interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByToken(ctx context.Context, token string) (*models.AuthToken, error)
	MarkUsed(ctx context.Context, token string) error
	CountRecentByEmail(ctx context.Context, email string, duration time.Duration) (int64, error)
}

type accountStore interface {
	FindOrCreate(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	tokens      tokenStore
	accounts    accountStore
	jwtSecret   string
	frontendURL string
}

func NewAuthHandler(tokens tokenStore, accounts accountStore, jwtSecret, frontendURL string) *AuthHandler {
	return &AuthHandler{
		tokens:      tokens,
		accounts:    accounts,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

// --- Request / Response types ---

type RequestLoginRequest struct {
	Email string `json:"email"`
}

type VerifyResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --- POST /auth/request ---

func (h *AuthHandler) RequestLogin(w http.ResponseWriter, r *http.Request) {
	var req RequestLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	// Rate limiting: max 5 requests per email in 10 minutes
	count, err := h.tokens.CountRecentByEmail(r.Context(), req.Email, 10*time.Minute)
	if err != nil {
		logger.Error().Err(err).Msg("checking rate limit")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if count >= 5 {
		writeError(w, http.StatusTooManyRequests, "too many login requests, please try again later")
		return
	}

	// Generate unique token
	tokenValue := uuid.New().String()

	// Store token in DB with 15-minute expiry
	authToken := &models.AuthToken{
		Email:     req.Email,
		Token:     tokenValue,
		ExpiresAt: time.Now().Add(15 * time.Minute),
		IsUsed:    false,
	}
	if err := h.tokens.Create(r.Context(), authToken); err != nil {
		logger.Error().Err(err).Msg("creating auth token")
		writeError(w, http.StatusInternalServerError, "failed to create login token")
		return
	}

	// Email links go through our /auth/redirect page first: mail
	// clients strip direct app links, and the page forwards the token
	// to the frontend.
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	emailLink := fmt.Sprintf("%s/auth/redirect?token=%s", baseURL, tokenValue)

	if err := sendLoginEmail(req.Email, emailLink); err != nil {
		logger.Error().Err(err).Msg("sending login email")
		// Don't fail the request — token is created, email sending is best-effort
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "login link generated (email delivery may be delayed)",
			"note":    "check server logs if email was not received",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "login link sent to your email",
	})
}

// --- GET /auth/verify ---

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	tokenValue := r.URL.Query().Get("token")
	if tokenValue == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	authToken, err := h.tokens.FindByToken(r.Context(), tokenValue)
	if err != nil {
		logger.Error().Err(err).Msg("finding token")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if authToken == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	// Validate: not expired
	if authToken.IsExpired() {
		writeError(w, http.StatusUnauthorized, "token has expired")
		return
	}

	// Validate: not already used (single-use)
	if authToken.IsUsed {
		writeError(w, http.StatusUnauthorized, "token has already been used")
		return
	}

	if err := h.tokens.MarkUsed(r.Context(), tokenValue); err != nil {
		logger.Error().Err(err).Msg("marking token as used")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Find or create the account; first logins get the plain user role
	user, err := h.accounts.FindOrCreate(r.Context(), authToken.Email)
	if err != nil {
		logger.Error().Err(err).Msg("finding/creating user")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Generate JWT with 30-day expiry; the role claim gates the
	// team/organization analytics routes
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := jwtToken.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger.Error().Err(err).Msg("signing JWT")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Token: tokenString,
		User:  user,
	})
}

// --- GET /auth/redirect ---
// Clicked from the email. Serves a small page that forwards the token
// to the frontend's login route.

func (h *AuthHandler) RedirectToApp(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	target := fmt.Sprintf("%s/login?token=%s", h.frontendURL, token)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Signing in to Uplift...</title>
	<style>
		body { font-family: -apple-system, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background: #f5f3ff; }
		.card { text-align: center; padding: 40px; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.1); max-width: 400px; }
		h1 { color: #333; font-size: 24px; }
		p { color: #666; font-size: 16px; line-height: 1.5; }
		.btn { display: inline-block; background: #6366f1; color: white; padding: 14px 32px; border-radius: 10px; text-decoration: none; font-weight: 600; font-size: 16px; margin-top: 16px; }
		.btn:hover { background: #4f46e5; }
	</style>
</head>
<body>
	<div class="card">
		<h1>Signing in to Uplift...</h1>
		<p>You should be redirected automatically.</p>
		<p>If nothing happens, click the button below:</p>
		<a href="%s" class="btn">Open Uplift</a>
	</div>
	<script>
		window.location.href = "%s";
	</script>
</body>
</html>`, target, target)
}

// --- Helpers ---

func sendLoginEmail(to, link string) error {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	if apiKey == "" {
		logger.Warn().Msg("RESEND_API_KEY not set, skipping email send")
		logger.Info().Str("email", to).Str("link", link).Msg("[dev mode] login link")
		return nil
	}

	client := resend.NewClient(apiKey)

	params := &resend.SendEmailRequest{
		From:    fromEmail,
		To:      []string{to},
		Subject: "Your Uplift Login Link",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome to Uplift! 🙌</h2>
				<p>Click the button below to log in to your account:</p>
				<a href="%s" style="display: inline-block; background: #6366f1; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
					Open Uplift
				</a>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					This link expires in 15 minutes and can only be used once.
				</p>
				<p style="color: #aaa; font-size: 12px;">
					If you didn't request this, you can safely ignore this email.
				</p>
			</div>
		`, link),
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info().Str("email_id", sent.Id).Msg("login email sent")
	return nil
}
