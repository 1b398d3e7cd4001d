package repository

import (
	"context"
	"strings"
	"time"

	"uplift-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UserRepo is the user directory: lookups for the feedback engine and
// handlers, plus the admin provisioning operations. It satisfies
// feedback.Directory.
type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

// GetUser returns (nil, nil) when the id does not resolve.
func (r *UserRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByManager returns the direct reports of the given manager.
func (r *UserRepo) ListByManager(ctx context.Context, managerID string) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"manager_id": managerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}
	return err
}

// FindOrCreate resolves an account by email, provisioning a plain user
// role on first login. The display name defaults to the mailbox part of
// the address until an admin sets a proper one.
func (r *UserRepo) FindOrCreate(ctx context.Context, email string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	newUser := &models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleUser,
	}
	if err := r.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// DeleteUser removes a user. Deleting the sole remaining admin is
// refused so the system always retains at least one admin account.
func (r *UserRepo) DeleteUser(ctx context.Context, id string) error {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return models.ErrUnknownUser
	}

	if user.Role == models.RoleAdmin {
		admins, err := r.collection.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
		if err != nil {
			return err
		}
		if admins <= 1 {
			return models.ErrLastAdmin
		}
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes creates necessary indexes for the users collection
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "manager_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
