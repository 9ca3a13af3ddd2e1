package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lueur-studio/core/internal/models"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("submission not found")
	ErrMissingFields = errors.New("name, email and message are required")
	ErrBadStatus     = errors.New("unknown submission status")
)

type Repository interface {
	Insert(ctx context.Context, sub *models.ContactSubmission) error
	List(ctx context.Context) ([]*models.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SubmitInput is the public contact form payload.
type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.ContactSubmission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, ErrMissingFields
	}

	sub := &models.ContactSubmission{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Company:   strings.TrimSpace(in.Company),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		Status:    models.ContactNew,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("contact submission received", zap.String("id", sub.ID))
	return sub, nil
}

func (s *Service) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id string, status models.ContactStatus) error {
	switch status {
	case models.ContactNew, models.ContactRead, models.ContactReplied, models.ContactArchived:
	default:
		return ErrBadStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
