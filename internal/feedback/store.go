package feedback

import (
	"context"
	"fmt"
	"math"
	"sync"

	"uplift-backend/internal/models"
	"uplift-backend/internal/sentiment"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Persistence is the durable backend for the feedback log. LoadAll is
// called once when the store opens; Append once per new item. The
// backing medium (Mongo, memory) is interchangeable.
type Persistence interface {
	LoadAll(ctx context.Context) ([]models.FeedbackItem, error)
	Append(ctx context.Context, item models.FeedbackItem) error
}

// Directory is the read-only user lookup the store needs for
// organization rollups. GetUser returns (nil, nil) when the id does not
// resolve.
type Directory interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Store owns the append-only feedback collection. Appends are
// serialized by the mutex so insertion order stays chronological and
// ids are never raced; queries copy the slice under the lock and
// compute on the snapshot.
type Store struct {
	mu          sync.Mutex
	items       []models.FeedbackItem
	persistence Persistence
	directory   Directory
	clock       clockwork.Clock
}

// Open loads the existing feedback log from the persistence backend and
// returns a ready store.
func Open(ctx context.Context, p Persistence, d Directory, clock clockwork.Clock) (*Store, error) {
	items, err := p.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feedback log: %w", err)
	}
	return &Store{
		items:       items,
		persistence: p,
		directory:   d,
		clock:       clock,
	}, nil
}

// Add classifies the message, assigns a fresh id and timestamp, appends
// the item and persists it. The item is never partially applied: it is
// either fully constructed and appended, or the call fails before any
// state change. If persistence fails the item stays in the in-memory
// collection for the current session and the error is still returned,
// wrapped in models.ErrPersistence, so the caller can surface it.
func (s *Store) Add(ctx context.Context, typ models.FeedbackType, category, senderID, recipientID, message string) (models.FeedbackItem, error) {
	if !typ.Valid() {
		return models.FeedbackItem{}, fmt.Errorf("%w: %q", models.ErrInvalidType, typ)
	}
	if !models.ValidCategory(typ, category) {
		return models.FeedbackItem{}, fmt.Errorf("%w: %q for type %q", models.ErrInvalidCategory, category, typ)
	}
	if message == "" {
		return models.FeedbackItem{}, models.ErrEmptyMessage
	}

	item := models.FeedbackItem{
		ID:          uuid.New().String(),
		Type:        typ,
		Category:    category,
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
		Sentiment:   sentiment.Classify(message),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.Timestamp = s.clock.Now().UTC()
	s.items = append(s.items, item)

	if err := s.persistence.Append(ctx, item); err != nil {
		return item, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return item, nil
}

// snapshot returns a copy of the current collection so queries can run
// without holding the lock.
func (s *Store) snapshot() []models.FeedbackItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.FeedbackItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len reports the current number of items in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// UserFeedbacks returns the items the user gave and received, each in
// store (chronological) order. An item whose sender and recipient are
// both userID appears in both lists; that is defined behavior, not a
// bug to deduplicate.
func (s *Store) UserFeedbacks(userID string) UserFeedbacks {
	out := UserFeedbacks{
		Given:    []models.FeedbackItem{},
		Received: []models.FeedbackItem{},
	}
	for _, item := range s.snapshot() {
		if item.SenderID == userID {
			out.Given = append(out.Given, item)
		}
		if item.RecipientID == userID {
			out.Received = append(out.Received, item)
		}
	}
	return out
}

// UserStats counts the user's given/received items per type and derives
// the engagement score: giving weighs 10, receiving 5, halved and
// capped at 100.
func (s *Store) UserStats(userID string) UserStats {
	fb := s.UserFeedbacks(userID)

	var stats UserStats
	for _, item := range fb.Given {
		if item.Type == models.TypeConsider {
			stats.ConsiderGiven++
		} else {
			stats.ContinueGiven++
		}
	}
	for _, item := range fb.Received {
		if item.Type == models.TypeConsider {
			stats.ConsiderReceived++
		} else {
			stats.ContinueReceived++
		}
	}

	given := stats.ConsiderGiven + stats.ContinueGiven
	received := stats.ConsiderReceived + stats.ContinueReceived
	stats.EngagementScore = boundedScore(float64(given*10+received*5) / 2)
	return stats
}

// TeamStats aggregates over the items where the manager was sender or
// recipient. That is the scope the product computes today; feedback
// purely between the manager's reports is not included.
func (s *Store) TeamStats(managerID string) TeamStats {
	stats := TeamStats{MemberStats: map[string]MemberStat{}}

	for _, item := range s.snapshot() {
		if item.SenderID != managerID && item.RecipientID != managerID {
			continue
		}
		if item.Type == models.TypeConsider {
			stats.TotalFeedbacks++
		} else {
			stats.TotalAppreciations++
		}

		sender := stats.MemberStats[item.SenderID]
		sender.Given++
		stats.MemberStats[item.SenderID] = sender

		recipient := stats.MemberStats[item.RecipientID]
		recipient.Received++
		stats.MemberStats[item.RecipientID] = recipient
	}

	// Zero distinct members means zero engagement, not a division by zero.
	if members := len(stats.MemberStats); members > 0 {
		raw := float64(stats.TotalFeedbacks+stats.TotalAppreciations*2) / float64(members)
		stats.EngagementScore = boundedScore(raw)
	}
	return stats
}

// OrganizationStats aggregates the whole log. Each item is attributed
// to its recipient's department; items whose recipient does not resolve
// or has no recognized department count toward the totals but land in
// no bucket. The department key set is fixed regardless of data.
func (s *Store) OrganizationStats(ctx context.Context) (OrganizationStats, error) {
	stats := OrganizationStats{DepartmentStats: map[string]DepartmentStat{}}
	for _, dept := range models.Departments {
		stats.DepartmentStats[dept] = DepartmentStat{}
	}

	deptByUser := map[string]string{}
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return OrganizationStats{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		deptByUser[u.ID] = u.Department
	}

	for _, item := range s.snapshot() {
		consider := item.Type == models.TypeConsider
		if consider {
			stats.TotalFeedbacks++
		} else {
			stats.TotalAppreciations++
		}

		dept, ok := stats.DepartmentStats[deptByUser[item.RecipientID]]
		if !ok {
			continue
		}
		if consider {
			dept.Feedbacks++
		} else {
			dept.Appreciations++
		}
		stats.DepartmentStats[deptByUser[item.RecipientID]] = dept
	}

	var sum int
	for name, dept := range stats.DepartmentStats {
		dept.Engagement = boundedScore(float64(dept.Feedbacks+dept.Appreciations*2) / 2)
		stats.DepartmentStats[name] = dept
		sum += dept.Engagement
	}
	stats.AverageEngagement = int(math.Round(float64(sum) / float64(len(stats.DepartmentStats))))
	return stats, nil
}

// boundedScore rounds (half away from zero) and saturates at 100. All
// engagement inputs are non-negative, so the result is always in [0, 100].
func boundedScore(raw float64) int {
	score := int(math.Round(raw))
	if score > 100 {
		return 100
	}
	return score
}
