package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lueur-studio/core/internal/models"
)

var (
	ErrNotFound     = errors.New("service not found")
	ErrMissingTitle = errors.New("service title is required")
)

type Repository interface {
	Insert(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Service, error)
	Replace(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPublic returns only the offerings visible on the site.
func (s *Service) ListPublic(ctx context.Context) ([]*models.Service, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]*models.Service, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in *models.Service) (*models.Service, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, ErrMissingTitle
	}
	now := time.Now()
	in.ID = uuid.New().String()
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.FormSchema == nil {
		in.FormSchema = []models.FormQuestion{}
	}
	ensureQuestionIDs(in.FormSchema)
	if err := s.repo.Insert(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Update(ctx context.Context, id string, in *models.Service) (*models.Service, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, ErrMissingTitle
	}
	in.ID = id
	in.CreatedAt = current.CreatedAt
	in.UpdatedAt = time.Now()
	if in.FormSchema == nil {
		in.FormSchema = []models.FormQuestion{}
	}
	ensureQuestionIDs(in.FormSchema)
	if err := s.repo.Replace(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func ensureQuestionIDs(qs []models.FormQuestion) {
	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = uuid.New().String()
		}
	}
}
