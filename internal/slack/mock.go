package slack

import (
	"context"

	"uplift-backend/pkg/logger"
)

// MockSlack implements the Notifier interface by logging messages.
// Replace this with a real Slack client for production use.
type MockSlack struct{}

func NewMockSlack() *MockSlack {
	return &MockSlack{}
}

func (m *MockSlack) Publish(ctx context.Context, message string) error {
	logger.Info().Str("message", message).Msg("published to Slack channel (mock)")
	return nil
}
