package portfolio

import (
	"context"
	"errors"

	"github.com/lueur-studio/core/internal/models"
	"go.uber.org/zap"
)

var ErrProjectNotFound = errors.New("project not found")

// UsageSyncer reconciles asset usage records against the set of asset
// URLs a project currently references.
type UsageSyncer interface {
	SyncProjectUsage(ctx context.Context, projectID string, urls []string) error
}

type Service struct {
	repo  Repository
	usage UsageSyncer
	log   *zap.Logger
}

func NewService(repo Repository, usage UsageSyncer, log *zap.Logger) *Service {
	return &Service{repo: repo, usage: usage, log: log}
}

func (s *Service) List(ctx context.Context) ([]*models.Project, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a fresh empty project and returns it.
func (s *Service) Create(ctx context.Context) (*models.Project, error) {
	p := models.NewEmptyProject()
	if err := s.repo.Save(ctx, &p); err != nil {
		return nil, err
	}
	s.syncUsage(ctx, &p)
	return &p, nil
}

// Save stores the submitted snapshot whole and reconciles asset usage
// with the URLs it references. A usage sync failure does not fail the
// save; the records self-heal on the next one.
func (s *Service) Save(ctx context.Context, p *models.Project) error {
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.syncUsage(ctx, p)
	return nil
}

// Delete removes the project and releases every asset usage it held.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.usage != nil {
		if err := s.usage.SyncProjectUsage(ctx, id, nil); err != nil {
			s.log.Warn("release asset usage failed",
				zap.String("project", id), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) syncUsage(ctx context.Context, p *models.Project) {
	if s.usage == nil {
		return
	}
	if err := s.usage.SyncProjectUsage(ctx, p.ID, p.AssetURLs()); err != nil {
		s.log.Warn("sync asset usage failed",
			zap.String("project", p.ID), zap.Error(err))
	}
}
