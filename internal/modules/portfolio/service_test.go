package portfolio

import (
	"context"
	"testing"

	"github.com/lueur-studio/core/internal/models"
	"go.uber.org/zap"
)

type memRepo struct {
	projects map[string]*models.Project
}

func newMemRepo() *memRepo {
	return &memRepo{projects: map[string]*models.Project{}}
}

func (r *memRepo) Save(_ context.Context, p *models.Project) error {
	cp := p.Clone()
	r.projects[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := p.Clone()
	return &cp, nil
}

func (r *memRepo) List(_ context.Context) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		cp := p.Clone()
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type syncCall struct {
	projectID string
	urls      []string
}

type recordingSyncer struct {
	calls []syncCall
}

func (s *recordingSyncer) SyncProjectUsage(_ context.Context, projectID string, urls []string) error {
	s.calls = append(s.calls, syncCall{projectID: projectID, urls: urls})
	return nil
}

func TestServiceSaveSyncsAssetUsage(t *testing.T) {
	repo := newMemRepo()
	syncer := &recordingSyncer{}
	svc := NewService(repo, syncer, zap.NewNop())
	ctx := context.Background()

	p := models.NewEmptyProject()
	p.CoverImage = "https://cdn.example.com/cover.webp"
	sec, _ := models.NewSection(1)
	img := models.NewImageBlock()
	img.Src = "https://cdn.example.com/a.webp"
	sec.Blocks = []models.Block{img}
	p.Sections = []models.Section{sec}

	if err := svc.Save(ctx, &p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(syncer.calls) != 1 {
		t.Fatalf("sync calls = %d, want 1", len(syncer.calls))
	}
	call := syncer.calls[0]
	if call.projectID != p.ID {
		t.Fatalf("sync project = %q, want %q", call.projectID, p.ID)
	}
	if len(call.urls) != 2 {
		t.Fatalf("sync urls = %v, want cover and image", call.urls)
	}

	got, err := svc.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.CoverImage != p.CoverImage {
		t.Fatal("saved project should be readable")
	}
}

func TestServiceDeleteReleasesAssetUsage(t *testing.T) {
	repo := newMemRepo()
	syncer := &recordingSyncer{}
	svc := NewService(repo, syncer, zap.NewNop())
	ctx := context.Background()

	p, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	syncer.calls = nil

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(syncer.calls) != 1 {
		t.Fatalf("sync calls = %d, want 1", len(syncer.calls))
	}
	if syncer.calls[0].urls != nil {
		t.Fatalf("delete must release all usages, got urls %v", syncer.calls[0].urls)
	}

	if got, _ := svc.GetByID(ctx, p.ID); got != nil {
		t.Fatal("project should be gone")
	}

	if err := svc.Delete(ctx, p.ID); err != ErrProjectNotFound {
		t.Fatalf("second delete err = %v, want ErrProjectNotFound", err)
	}
}
