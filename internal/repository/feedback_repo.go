package repository

import (
	"context"

	"uplift-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// FeedbackRepo is the Mongo-backed persistence for the feedback log. It
// satisfies feedback.Persistence: the whole log is read once at
// startup, after that only appends happen. Items are never updated or
// deleted.
type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection("feedbacks"),
	}
}

// LoadAll returns every stored item in chronological order.
func (r *FeedbackRepo) LoadAll(ctx context.Context) ([]models.FeedbackItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.FeedbackItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FeedbackRepo) Append(ctx context.Context, item models.FeedbackItem) error {
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

// EnsureIndexes creates necessary indexes for the feedbacks collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "sender_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "recipient_id", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
