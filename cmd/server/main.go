package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"uplift-backend/internal/database"
	"uplift-backend/internal/feedback"
	"uplift-backend/internal/handlers"
	customMiddleware "uplift-backend/internal/middleware"
	"uplift-backend/internal/repository"
	"uplift-backend/internal/slack"
	"uplift-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	logger.Init(getEnv("LOG_LEVEL", "info"))

	// Required env vars
	mongoURI := getEnv("MONGODB_URI", "")
	dbName := getEnv("DB_NAME", "uplift")
	jwtSecret := getEnv("JWT_SECRET", "")
	port := getEnv("PORT", "8080")
	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")
	storeBackend := getEnv("STORE_BACKEND", "mongo")

	if mongoURI == "" {
		logger.Fatal().Msg("MONGODB_URI is required")
	}
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	// Connect to MongoDB
	db, err := database.Connect(mongoURI, dbName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewAuthTokenRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create user indexes")
	}
	if err := tokenRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create token indexes")
	}
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create feedback indexes")
	}

	// Open the feedback store. The memory backend keeps the log for the
	// process lifetime only; useful for local development.
	var persistence feedback.Persistence = feedbackRepo
	if storeBackend == "memory" {
		logger.Warn().Msg("using in-memory feedback store, data is not durable")
		persistence = feedback.NewMemoryPersistence()
	}
	store, err := feedback.Open(ctx, persistence, userRepo, clockwork.NewRealClock())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open feedback store")
	}
	logger.Info().Int("items", store.Len()).Msg("feedback store loaded")

	// Initialize Slack notifier (mock)
	notifier := slack.NewMockSlack()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(tokenRepo, userRepo, jwtSecret, frontendURL)
	feedbackHandler := handlers.NewFeedbackHandler(store, userRepo, notifier)
	statsHandler := handlers.NewStatsHandler(store)
	userHandler := handlers.NewUserHandler(userRepo)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"uplift-backend"}`))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Public routes (no auth required)
	r.Post("/auth/request", authHandler.RequestLogin)
	r.Get("/auth/verify", authHandler.VerifyToken)
	r.Get("/auth/redirect", authHandler.RedirectToApp)

	// Protected routes (JWT required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(jwtSecret))

		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Get("/feedback/user/{userID}", feedbackHandler.ListUserFeedbacks)

		r.Get("/stats/user/{userID}", statsHandler.UserStats)
		r.Get("/stats/team/{managerID}", statsHandler.TeamStats)
		r.Get("/stats/organization", statsHandler.OrganizationStats)

		r.Get("/user/me", userHandler.Me)
		r.Get("/users", userHandler.ListUsers)
		r.Post("/users", userHandler.CreateUser)
		r.Delete("/users/{userID}", userHandler.DeleteUser)
	})

	// Start server
	logger.Info().Str("port", port).Msg("uplift backend starting")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
