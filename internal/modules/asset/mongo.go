package asset

import (
	"context"
	"fmt"

	"github.com/lueur-studio/core/internal/database"
	"github.com/lueur-studio/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores asset records in the assets collection. The
// hash field carries a unique index (bootstrapped at connect), so the
// dedup lookup is a point query and concurrent duplicate inserts fail
// fast instead of forking the library.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(database.ColAssets)}
}

func (r *MongoRepository) Insert(ctx context.Context, a *models.Asset) error {
	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("hash %s: %w", a.Hash, ErrDuplicateHash)
	}
	return err
}

func (r *MongoRepository) FindByHash(ctx context.Context, hash string) (*models.Asset, error) {
	return r.findOne(ctx, bson.M{"hash": hash})
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Asset, error) {
	var a models.Asset
	err := r.col.FindOne(ctx, filter).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Asset, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *MongoRepository) FindByURLs(ctx context.Context, urls []string) ([]models.Asset, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	return r.findAll(ctx, bson.M{"url": bson.M{"$in": urls}})
}

func (r *MongoRepository) ListUsedBy(ctx context.Context, ownerID string) ([]models.Asset, error) {
	return r.findAll(ctx, bson.M{"usedIn": ownerID})
}

func (r *MongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Asset, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	assets := make([]models.Asset, 0)
	if err := cur.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *MongoRepository) AddUsage(ctx context.Context, id, ownerID string) error {
	return r.updateUsage(ctx, id, bson.M{"$addToSet": bson.M{"usedIn": ownerID}})
}

func (r *MongoRepository) RemoveUsage(ctx context.Context, id, ownerID string) error {
	return r.updateUsage(ctx, id, bson.M{"$pull": bson.M{"usedIn": ownerID}})
}

func (r *MongoRepository) updateUsage(ctx context.Context, id string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
