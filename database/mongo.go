package database

import (
	"context"
	"fmt"
	"time"

	"github.com/project-registry/logutils"
	"github.com/project-registry/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// serverSelectionTimeout bounds how long connect waits for a reachable server.
const serverSelectionTimeout = 30 * time.Second

// OpenMongo connects to MongoDB, verifies the connection and ensures indexes.
func OpenMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logutils.Log.WithField("database", dbName).Info("connected to mongodb")
	return client, db, nil
}

// EnsureMongoIndexes creates the unique email index on users and the
// createdAt index used by the recent-projects query.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(repositories.UsersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	projects := db.Collection(repositories.ProjectsCollection)
	if _, err := projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create projects createdAt index: %w", err)
	}
	return nil
}
