package feedback

import (
	"context"
	"sync"

	"uplift-backend/internal/models"
)

// MemoryPersistence keeps the feedback log in process memory. Used by
// tests and by the server's memory store backend.
type MemoryPersistence struct {
	mu    sync.Mutex
	items []models.FeedbackItem
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) LoadAll(_ context.Context) ([]models.FeedbackItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.FeedbackItem, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *MemoryPersistence) Append(_ context.Context, item models.FeedbackItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}
