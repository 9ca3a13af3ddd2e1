package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lueur-studio/core/internal/database"
	"github.com/lueur-studio/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsDocID keys the single site-wide settings document.
const settingsDocID = "main"

type Service struct {
	col *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{col: db.Collection(database.ColSettings)}
}

// Get returns the stored settings, or the defaults when none exist yet.
func (s *Service) Get(ctx context.Context) (models.SiteSettings, error) {
	var doc struct {
		models.SiteSettings `bson:",inline"`
	}
	err := s.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("get site settings: %w", err)
	}
	return doc.SiteSettings, nil
}

// Update stores the submitted settings whole, stamping UpdatedAt.
func (s *Service) Update(ctx context.Context, in models.SiteSettings) (models.SiteSettings, error) {
	in.UpdatedAt = time.Now()
	doc := bson.M{
		"_id":                 settingsDocID,
		"servicesPageEnabled": in.ServicesPageEnabled,
		"updatedAt":           in.UpdatedAt,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts); err != nil {
		return models.SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}
	return in, nil
}
