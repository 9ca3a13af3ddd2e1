package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/lueur-studio/core/internal/models"
	"github.com/lueur-studio/core/internal/pkg/contenthash"
	"go.uber.org/zap"
)

type fakeRepo struct {
	assets map[string]*models.Asset // by id

	insertErr error
	onInsert  func(*fakeRepo)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{assets: map[string]*models.Asset{}}
}

func (r *fakeRepo) Insert(_ context.Context, a *models.Asset) error {
	if r.onInsert != nil {
		r.onInsert(r)
	}
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, existing := range r.assets {
		if existing.Hash == a.Hash {
			return ErrDuplicateHash
		}
	}
	cp := *a
	r.assets[a.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByHash(_ context.Context, hash string) (*models.Asset, error) {
	for _, a := range r.assets {
		if a.Hash == hash {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeRepo) FindByURLs(_ context.Context, urls []string) ([]models.Asset, error) {
	want := map[string]bool{}
	for _, u := range urls {
		want[u] = true
	}
	var out []models.Asset
	for _, a := range r.assets {
		if want[a.URL] {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListUsedBy(_ context.Context, ownerID string) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range r.assets {
		for _, owner := range a.UsedIn {
			if owner == ownerID {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) AddUsage(_ context.Context, id, ownerID string) error {
	a, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	for _, owner := range a.UsedIn {
		if owner == ownerID {
			return nil
		}
	}
	a.UsedIn = append(a.UsedIn, ownerID)
	return nil
}

func (r *fakeRepo) RemoveUsage(_ context.Context, id, ownerID string) error {
	a, ok := r.assets[id]
	if !ok {
		return ErrNotFound
	}
	kept := a.UsedIn[:0]
	for _, owner := range a.UsedIn {
		if owner != ownerID {
			kept = append(kept, owner)
		}
	}
	a.UsedIn = kept
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assets[id]; !ok {
		return ErrNotFound
	}
	delete(r.assets, id)
	return nil
}

type fakeBlob struct {
	puts    int
	deletes []string

	putErr    error
	deleteErr error
}

func (b *fakeBlob) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if b.putErr != nil {
		return "", b.putErr
	}
	b.puts++
	return "https://cdn.example.com/" + key, nil
}

func (b *fakeBlob) Delete(_ context.Context, key string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deletes = append(b.deletes, key)
	return nil
}

func newTestService(repo Repository, blobs *fakeBlob) *Service {
	return NewService(repo, blobs, zap.NewNop())
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadDeduplicates(t *testing.T) {
	repo := newFakeRepo()
	blobs := &fakeBlob{}
	svc := newTestService(repo, blobs)
	ctx := context.Background()
	data := pngBytes(t, 10, 20)

	first, err := svc.Upload(ctx, UploadInput{FileName: "a.png", MimeType: "image/png", Data: data})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if first.WasReused {
		t.Fatal("first upload must create a new record")
	}
	if first.Asset.Width != 10 || first.Asset.Height != 20 {
		t.Fatalf("dimensions = %dx%d, want 10x20", first.Asset.Width, first.Asset.Height)
	}
	if first.Asset.Kind != models.AssetImage {
		t.Fatalf("kind = %q, want image", first.Asset.Kind)
	}

	second, err := svc.Upload(ctx, UploadInput{FileName: "copy.png", MimeType: "image/png", Data: data})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if !second.WasReused {
		t.Fatal("identical bytes must reuse the existing record")
	}
	if second.Asset.ID != first.Asset.ID || second.Asset.URL != first.Asset.URL {
		t.Fatal("reuse must return the original record")
	}
	if blobs.puts != 1 {
		t.Fatalf("blob puts = %d, want 1", blobs.puts)
	}
	if len(repo.assets) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.assets))
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeBlob{})
	if _, err := svc.Upload(context.Background(), UploadInput{FileName: "a.png"}); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err = %v, want ErrEmptyFile", err)
	}
}

func TestUploadBlobFailurePropagates(t *testing.T) {
	blobs := &fakeBlob{putErr: fmt.Errorf("bucket unavailable")}
	repo := newFakeRepo()
	svc := newTestService(repo, blobs)
	if _, err := svc.Upload(context.Background(), UploadInput{FileName: "a.bin", MimeType: "application/octet-stream", Data: []byte{1}}); err == nil {
		t.Fatal("expected blob failure to surface")
	}
	if len(repo.assets) != 0 {
		t.Fatal("no record may exist after a failed blob write")
	}
}

func TestUploadLostRaceReturnsWinner(t *testing.T) {
	data := []byte("raced bytes")
	repo := newFakeRepo()
	winner := &models.Asset{ID: "winner", Hash: contenthash.Sum(data), URL: "https://cdn.example.com/winner"}
	// The rival record appears between the dedup lookup and the insert,
	// so the insert hits the unique index.
	repo.onInsert = func(r *fakeRepo) {
		if _, ok := r.assets[winner.ID]; !ok {
			r.assets[winner.ID] = winner
		}
	}
	blobs := &fakeBlob{}
	svc := newTestService(repo, blobs)
	res, err := svc.Upload(context.Background(), UploadInput{FileName: "a.bin", MimeType: "application/octet-stream", Data: data})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !res.WasReused {
		t.Fatal("losing the race must report reuse")
	}
	if res.Asset.ID != "winner" {
		t.Fatalf("asset id = %q, want the rival's record", res.Asset.ID)
	}
	if len(blobs.deletes) != 1 {
		t.Fatalf("orphan blob deletes = %d, want 1", len(blobs.deletes))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	seed := func(usedIn []string) (*Service, *fakeRepo, *fakeBlob) {
		repo := newFakeRepo()
		repo.assets["a1"] = &models.Asset{ID: "a1", Path: "assets/images/a1.webp", Hash: "h1", UsedIn: usedIn}
		blobs := &fakeBlob{}
		return newTestService(repo, blobs), repo, blobs
	}

	t.Run("unknown id", func(t *testing.T) {
		svc, _, _ := seed(nil)
		if err := svc.Delete(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("in use is rejected intact", func(t *testing.T) {
		svc, repo, blobs := seed([]string{"proj-1", "proj-2"})
		err := svc.Delete(ctx, "a1")
		var inUse *InUseError
		if !errors.As(err, &inUse) {
			t.Fatalf("err = %v, want InUseError", err)
		}
		if len(inUse.UsedIn) != 2 {
			t.Fatalf("usedIn = %v, want both owners", inUse.UsedIn)
		}
		if len(blobs.deletes) != 0 || repo.assets["a1"] == nil {
			t.Fatal("a rejected delete must leave blob and record intact")
		}
	})

	t.Run("unused is removed blob first", func(t *testing.T) {
		svc, repo, blobs := seed([]string{})
		if err := svc.Delete(ctx, "a1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if len(blobs.deletes) != 1 || blobs.deletes[0] != "assets/images/a1.webp" {
			t.Fatalf("blob deletes = %v", blobs.deletes)
		}
		if _, ok := repo.assets["a1"]; ok {
			t.Fatal("record must be gone")
		}
	})

	t.Run("blob failure keeps the record", func(t *testing.T) {
		svc, repo, blobs := seed([]string{})
		blobs.deleteErr = fmt.Errorf("storage down")
		if err := svc.Delete(ctx, "a1"); err == nil {
			t.Fatal("expected blob failure to surface")
		}
		if _, ok := repo.assets["a1"]; !ok {
			t.Fatal("record must survive a failed blob delete")
		}
	})
}

func TestUsageMarksAreIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.assets["a1"] = &models.Asset{ID: "a1", Hash: "h1", UsedIn: []string{}}
	svc := newTestService(repo, &fakeBlob{})

	for i := 0; i < 3; i++ {
		if err := svc.MarkUsed(ctx, "a1", "proj-1"); err != nil {
			t.Fatalf("MarkUsed: %v", err)
		}
	}
	if got := repo.assets["a1"].UsedIn; len(got) != 1 || got[0] != "proj-1" {
		t.Fatalf("usedIn = %v, want exactly one entry", got)
	}

	for i := 0; i < 2; i++ {
		if err := svc.MarkUnused(ctx, "a1", "proj-1"); err != nil {
			t.Fatalf("MarkUnused: %v", err)
		}
	}
	if got := repo.assets["a1"].UsedIn; len(got) != 0 {
		t.Fatalf("usedIn = %v, want empty", got)
	}
}

func TestListUnused(t *testing.T) {
	repo := newFakeRepo()
	repo.assets["a1"] = &models.Asset{ID: "a1", Hash: "h1", UsedIn: []string{"proj-1"}}
	repo.assets["a2"] = &models.Asset{ID: "a2", Hash: "h2", UsedIn: []string{}}
	svc := newTestService(repo, &fakeBlob{})

	unused, err := svc.ListUnused(context.Background())
	if err != nil {
		t.Fatalf("ListUnused: %v", err)
	}
	if len(unused) != 1 || unused[0].ID != "a2" {
		t.Fatalf("unused = %v, want just a2", unused)
	}
}

func TestSyncProjectUsage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.assets["a1"] = &models.Asset{ID: "a1", Hash: "h1", URL: "https://cdn.example.com/a1", UsedIn: []string{"proj-1"}}
	repo.assets["a2"] = &models.Asset{ID: "a2", Hash: "h2", URL: "https://cdn.example.com/a2", UsedIn: []string{}}
	repo.assets["a3"] = &models.Asset{ID: "a3", Hash: "h3", URL: "https://cdn.example.com/a3", UsedIn: []string{"proj-1"}}
	svc := newTestService(repo, &fakeBlob{})

	// proj-1 now references a1 and a2; its reference to a3 is stale.
	err := svc.SyncProjectUsage(ctx, "proj-1", []string{"https://cdn.example.com/a1", "https://cdn.example.com/a2"})
	if err != nil {
		t.Fatalf("SyncProjectUsage: %v", err)
	}
	if got := repo.assets["a1"].UsedIn; len(got) != 1 {
		t.Fatalf("a1 usedIn = %v", got)
	}
	if got := repo.assets["a2"].UsedIn; len(got) != 1 || got[0] != "proj-1" {
		t.Fatalf("a2 usedIn = %v", got)
	}
	if got := repo.assets["a3"].UsedIn; len(got) != 0 {
		t.Fatalf("a3 usedIn = %v, want released", got)
	}

	t.Run("no urls releases everything", func(t *testing.T) {
		if err := svc.SyncProjectUsage(ctx, "proj-1", nil); err != nil {
			t.Fatalf("SyncProjectUsage: %v", err)
		}
		for id, a := range repo.assets {
			if len(a.UsedIn) != 0 {
				t.Fatalf("%s usedIn = %v, want empty", id, a.UsedIn)
			}
		}
	})
}
