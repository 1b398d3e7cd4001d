package database

import (
	"context"
	"time"

	"uplift-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect opens a client, verifies it with a ping and returns the
// database handle. Callers pass the handle to the repositories; there
// is no package-level state.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info().Str("db", dbName).Msg("connected to MongoDB")
	return client.Database(dbName), nil
}
