package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"uplift-backend/internal/feedback"
	"uplift-backend/internal/metrics"
	"uplift-backend/internal/middleware"
	"uplift-backend/internal/models"
	"uplift-backend/internal/slack"
	"uplift-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	store     *feedback.Store
	directory Directory
	notifier  slack.Notifier
}

func NewFeedbackHandler(store *feedback.Store, directory Directory, notifier slack.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:     store,
		directory: directory,
		notifier:  notifier,
	}
}

type SubmitFeedbackRequest struct {
	Type        models.FeedbackType `json:"type"`
	Category    string              `json:"category"`
	RecipientID string              `json:"recipientId"`
	Message     string              `json:"message"`
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	senderID := middleware.GetUserID(r.Context())
	if senderID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RecipientID == "" {
		writeError(w, http.StatusBadRequest, "recipientId is required")
		return
	}
	if req.RecipientID == senderID {
		writeError(w, http.StatusBadRequest, "cannot send feedback to yourself")
		return
	}

	recipient, err := h.directory.GetUser(r.Context(), req.RecipientID)
	if err != nil {
		logger.Error().Err(err).Msg("looking up recipient")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if recipient == nil {
		writeError(w, http.StatusBadRequest, "unknown recipient")
		return
	}

	item, err := h.store.Add(r.Context(), req.Type, req.Category, senderID, req.RecipientID, req.Message)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidType),
		errors.Is(err, models.ErrInvalidCategory),
		errors.Is(err, models.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, models.ErrPersistence):
		// The item is retained in memory; tell the caller durability is
		// not guaranteed instead of silently dropping the submission.
		logger.Error().Err(err).Str("feedback_id", item.ID).Msg("feedback accepted but not persisted")
		metrics.PersistFailures.Inc()
		metrics.FeedbackSubmissions.WithLabelValues(string(item.Type), string(item.Sentiment)).Inc()
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"message":  "feedback accepted, but could not be persisted",
			"feedback": item,
		})
		return
	default:
		logger.Error().Err(err).Msg("submitting feedback")
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	metrics.FeedbackSubmissions.WithLabelValues(string(item.Type), string(item.Sentiment)).Inc()

	// Fire notification in a background goroutine (non-blocking)
	go func() {
		message := formatNotification(item, recipient.Name)
		if err := h.notifier.Publish(context.Background(), message); err != nil {
			logger.Error().Err(err).Msg("publishing notification")
		}
	}()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": item,
	})
}

func formatNotification(item models.FeedbackItem, recipientName string) string {
	kind := "Constructive feedback"
	if item.Type == models.TypeContinue {
		kind = "Appreciation"
	}
	return fmt.Sprintf("📝 *%s for %s*\nCategory: %s\nSentiment: %s",
		kind, recipientName, item.Category, item.Sentiment)
}

// --- GET /feedback/user/{userID} ---

func (h *FeedbackHandler) ListUserFeedbacks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !canViewUser(r.Context(), userID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, h.store.UserFeedbacks(userID))
}
