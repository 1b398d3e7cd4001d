package models

import "time"

type FeedbackType string

const (
	TypeConsider FeedbackType = "consider"
	TypeContinue FeedbackType = "continue"
)

func (t FeedbackType) Valid() bool {
	return t == TypeConsider || t == TypeContinue
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Category lists are closed per feedback type. The submit boundary
// rejects anything outside these sets.
var ConsiderCategories = []string{
	"Skill Development",
	"Communication",
	"Time Management",
	"Quality of Work",
	"Innovation and Initiative",
	"Team Collaboration",
	"Leadership",
	"Customer-Centricity",
	"Compliance and Ethics",
	"Adaptability",
}

var ContinueCategories = []string{
	"Team Contributions",
	"Outstanding Performance",
	"Creativity and Innovation",
	"Leadership Excellence",
	"Commitment and Dedication",
	"Customer Impact",
	"Learning and Growth",
	"Workplace Values",
}

// ValidCategory reports whether category belongs to the closed list for
// the given feedback type.
func ValidCategory(t FeedbackType, category string) bool {
	var list []string
	switch t {
	case TypeConsider:
		list = ConsiderCategories
	case TypeContinue:
		list = ContinueCategories
	default:
		return false
	}
	for _, c := range list {
		if c == category {
			return true
		}
	}
	return false
}

// FeedbackItem is immutable once appended to the store. Sentiment is
// computed from the message exactly once, at creation.
type FeedbackItem struct {
	ID          string       `bson:"_id" json:"id"`
	Type        FeedbackType `bson:"type" json:"type"`
	Category    string       `bson:"category" json:"category"`
	SenderID    string       `bson:"sender_id" json:"senderId"`
	RecipientID string       `bson:"recipient_id" json:"recipientId"`
	Message     string       `bson:"message" json:"message"`
	Timestamp   time.Time    `bson:"timestamp" json:"timestamp"`
	Sentiment   Sentiment    `bson:"sentiment" json:"sentiment"`
}
