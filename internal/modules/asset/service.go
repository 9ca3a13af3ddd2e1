package asset

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lueur-studio/core/internal/models"
	"github.com/lueur-studio/core/internal/pkg/blob"
	"github.com/lueur-studio/core/internal/pkg/contenthash"
	"go.uber.org/zap"
)

const storagePrefix = "assets/images"

var (
	// ErrNotFound reports an unknown asset id.
	ErrNotFound = errors.New("asset not found")
	// ErrEmptyFile rejects zero-byte uploads before anything is hashed.
	ErrEmptyFile = errors.New("file is empty")
	// ErrDuplicateHash is returned by Repository.Insert when another
	// writer created the same hash first.
	ErrDuplicateHash = errors.New("asset hash already exists")
)

// InUseError rejects deletion of an asset that projects still reference.
// It carries the referencing ids so callers can show why.
type InUseError struct {
	UsedIn []string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("asset is referenced by %d project(s)", len(e.UsedIn))
}

// Repository is the document-database collaborator for asset records.
type Repository interface {
	Insert(ctx context.Context, a *models.Asset) error
	FindByHash(ctx context.Context, hash string) (*models.Asset, error)
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	FindByURLs(ctx context.Context, urls []string) ([]models.Asset, error)
	ListUsedBy(ctx context.Context, ownerID string) ([]models.Asset, error)
	AddUsage(ctx context.Context, id, ownerID string) error
	RemoveUsage(ctx context.Context, id, ownerID string) error
	Delete(ctx context.Context, id string) error
}

// UploadInput is one file to ingest.
type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
}

// UploadResult reports the stored asset and whether an existing record
// was reused instead of writing new bytes.
type UploadResult struct {
	Asset     models.Asset `json:"asset"`
	WasReused bool         `json:"wasReused"`
}

// Service owns the content-addressed asset library.
type Service struct {
	repo  Repository
	blobs blob.Store
	log   *zap.Logger
}

func NewService(repo Repository, blobs blob.Store, log *zap.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, log: log.Named("asset")}
}

// Upload ingests a file with deduplication. Identical bytes hash to the
// same digest: a hit returns the existing record without touching blob
// storage, a miss uploads once and records the asset with no usages.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}

	hash := contenthash.Sum(in.Data)

	existing, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}
	if existing != nil {
		s.log.Info("reusing existing asset", zap.String("id", existing.ID), zap.String("hash", hash))
		return &UploadResult{Asset: *existing, WasReused: true}, nil
	}

	// Hash prefix + timestamp keeps keys collision-free without leaking
	// original filenames into storage paths.
	key := fmt.Sprintf("%s/%s-%d%s", storagePrefix, hash[:12], time.Now().UnixMilli(), strings.ToLower(path.Ext(in.FileName)))

	url, err := s.blobs.Put(ctx, key, in.Data, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("blob upload: %w", err)
	}

	kind := models.AssetVideo
	if strings.HasPrefix(in.MimeType, "image/") {
		kind = models.AssetImage
	}

	a := models.Asset{
		ID:        uuid.New().String(),
		URL:       url,
		Path:      key,
		Kind:      kind,
		Size:      int64(len(in.Data)),
		Hash:      hash,
		FileName:  in.FileName,
		MimeType:  in.MimeType,
		CreatedAt: time.Now().UTC(),
		UsedIn:    []string{},
	}
	if kind == models.AssetImage {
		if w, h, err := contenthash.ImageDimensions(in.Data); err != nil {
			s.log.Warn("could not read image dimensions", zap.String("file", in.FileName), zap.Error(err))
		} else {
			a.Width, a.Height = w, h
		}
	}

	if err := s.repo.Insert(ctx, &a); err != nil {
		if errors.Is(err, ErrDuplicateHash) {
			// Lost a concurrent upload race. The winner's record is
			// authoritative; our freshly written blob is redundant.
			if delErr := s.blobs.Delete(ctx, key); delErr != nil {
				s.log.Warn("orphan blob cleanup failed after lost upload race", zap.String("path", key), zap.Error(delErr))
			}
			winner, findErr := s.repo.FindByHash(ctx, hash)
			if findErr != nil {
				return nil, fmt.Errorf("re-fetch after duplicate insert: %w", findErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("duplicate insert for hash %s but no record found", hash)
			}
			return &UploadResult{Asset: *winner, WasReused: true}, nil
		}
		return nil, fmt.Errorf("persist asset: %w", err)
	}

	s.log.Info("uploaded new asset", zap.String("id", a.ID), zap.String("hash", hash), zap.Int64("size", a.Size))
	return &UploadResult{Asset: a, WasReused: false}, nil
}

// FindByHash returns the asset for a content hash, or nil when none
// exists. Backed by the unique hash index, never a scan.
func (s *Service) FindByHash(ctx context.Context, hash string) (*models.Asset, error) {
	return s.repo.FindByHash(ctx, hash)
}

// MarkUsed records that ownerID references the asset. Idempotent.
func (s *Service) MarkUsed(ctx context.Context, assetID, ownerID string) error {
	return s.repo.AddUsage(ctx, assetID, ownerID)
}

// MarkUnused removes ownerID's reference. Removing an absent owner is
// a no-op.
func (s *Service) MarkUnused(ctx context.Context, assetID, ownerID string) error {
	return s.repo.RemoveUsage(ctx, assetID, ownerID)
}

// List returns every asset, newest first.
func (s *Service) List(ctx context.Context) ([]models.Asset, error) {
	return s.repo.List(ctx)
}

// ListUnused returns assets no project references.
func (s *Service) ListUnused(ctx context.Context) ([]models.Asset, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	unused := make([]models.Asset, 0, len(all))
	for _, a := range all {
		if !a.InUse() {
			unused = append(unused, a)
		}
	}
	return unused, nil
}

// Delete removes an unused asset: blob first, then metadata. An in-use
// asset is rejected with InUseError and left fully intact. If the blob
// delete fails the record is kept, so nothing ever claims a URL that
// no longer resolves; if the metadata delete fails after the blob is
// gone, the failure is surfaced for operator recovery.
func (s *Service) Delete(ctx context.Context, assetID string) error {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return fmt.Errorf("load asset: %w", err)
	}
	if a == nil {
		return ErrNotFound
	}
	if a.InUse() {
		return &InUseError{UsedIn: a.UsedIn}
	}

	if err := s.blobs.Delete(ctx, a.Path); err != nil {
		return fmt.Errorf("blob delete: %w", err)
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("metadata delete after blob %s was removed: %w", a.Path, err)
	}

	s.log.Info("deleted asset", zap.String("id", a.ID), zap.String("path", a.Path))
	return nil
}

// SyncProjectUsage reconciles the usage references of one project
// against the asset URLs it currently embeds. Passing no URLs releases
// every reference the project holds (used on project delete).
func (s *Service) SyncProjectUsage(ctx context.Context, projectID string, urls []string) error {
	var referenced []models.Asset
	if len(urls) > 0 {
		var err error
		referenced, err = s.repo.FindByURLs(ctx, urls)
		if err != nil {
			return fmt.Errorf("resolve referenced assets: %w", err)
		}
	}

	current, err := s.repo.ListUsedBy(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list current usages: %w", err)
	}

	keep := make(map[string]struct{}, len(referenced))
	for _, a := range referenced {
		keep[a.ID] = struct{}{}
		if err := s.repo.AddUsage(ctx, a.ID, projectID); err != nil {
			return fmt.Errorf("mark asset %s used: %w", a.ID, err)
		}
	}
	for _, a := range current {
		if _, ok := keep[a.ID]; ok {
			continue
		}
		if err := s.repo.RemoveUsage(ctx, a.ID, projectID); err != nil {
			return fmt.Errorf("mark asset %s unused: %w", a.ID, err)
		}
	}
	return nil
}
