package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lueur-studio/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across modules.
const (
	ColAssets    = "assets"
	ColPortfolio = "portfolio"
	ColContacts  = "contacts"
	ColServices  = "services"
	ColSettings  = "site_settings"
)

// DB is the global database handle.
var DB *mongo.Database

// Connect opens a MongoDB connection, verifies it, and bootstraps the
// indexes the stores rely on.
func Connect(cfg *config.AppConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("index bootstrap failed: %w", err)
	}

	DB = db
	return db, nil
}

// Disconnect closes the underlying client.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}

// ensureIndexes creates the indexes every equality-filtered query path
// depends on. The unique hash index is what turns a concurrent
// duplicate upload into a detectable race instead of a duplicate record.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ColAssets).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("assets hash index: %w", err)
	}

	_, err = db.Collection(ColPortfolio).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("portfolio date index: %w", err)
	}

	_, err = db.Collection(ColContacts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("contacts createdAt index: %w", err)
	}
	return nil
}
