package portfolio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lueur-studio/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

func intp(v int) *int { return &v }

func samplePersistedProject(t *testing.T) *models.Project {
	t.Helper()
	created := time.Date(2026, 3, 14, 9, 30, 0, 250_000_000, time.UTC)

	sec, err := models.NewSection(4)
	if err != nil {
		t.Fatalf("NewSection: %v", err)
	}
	img := models.NewImageBlock()
	img.Src = "https://cdn.example.com/hero.webp"
	img.Alt = "hero"
	img.Position = &models.Position{X: 25, Y: 75}
	vid := models.NewVideoBlock()
	vid.Src = "https://cdn.example.com/reel.mp4"
	vid.Poster = "https://cdn.example.com/poster.webp"
	vid.Muted = true
	gal := models.NewGalleryBlock()
	gal.Images = []models.GalleryImage{{ID: "g1", Src: "https://cdn.example.com/g1.webp", Caption: "detail"}}
	gal.DisplayMode = models.GalleryMasonry
	txt := models.NewTextBlock()
	txt.Content = "<p>Credits</p>"
	txt.FontSize = 18
	txt.LineHeight = 1.6
	sec.Blocks = []models.Block{img, vid, gal, txt}
	sec.Responsive = &models.ResponsiveOverrides{
		Mobile: &models.SectionOverride{Columns: intp(1), Gap: intp(12)},
	}

	return &models.Project{
		ID:            "proj-1",
		Title:         "Identity refresh",
		Description:   "Full rebrand",
		Category:      "branding",
		Date:          "2026-03-01",
		CoverImage:    "https://cdn.example.com/cover.webp",
		CoverPosition: "center",
		Tags:          []string{"brand", "print"},
		Featured:      true,
		Sections:      []models.Section{sec},
		CreatedAt:     created,
		UpdatedAt:     created.Add(time.Hour),
		Version:       models.SchemaVersion,
	}
}

func TestPersistedRoundTrip(t *testing.T) {
	p := samplePersistedProject(t)

	doc, err := toPersisted(p)
	if err != nil {
		t.Fatalf("toPersisted: %v", err)
	}
	got, err := fromPersisted(doc)
	if err != nil {
		t.Fatalf("fromPersisted: %v", err)
	}

	wantJSON, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	gotJSON, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	if string(wantJSON) != string(gotJSON) {
		t.Fatalf("round trip drifted:\nwant %s\ngot  %s", wantJSON, gotJSON)
	}
}

func TestPersistedStripsAbsentFields(t *testing.T) {
	txt := models.NewTextBlock()
	doc, err := blockToDoc(txt)
	if err != nil {
		t.Fatalf("blockToDoc: %v", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("bson unmarshal: %v", err)
	}
	for _, key := range []string{"src", "poster", "images", "objectFit", "position", "background"} {
		if _, ok := m[key]; ok {
			t.Fatalf("field %q should be stripped from a text block document", key)
		}
	}
	if _, ok := m["content"]; !ok {
		t.Fatal("content must be persisted")
	}
}

func TestFromPersistedBackfillsLegacyRecords(t *testing.T) {
	doc := &projectDoc{
		ID:    "legacy-1",
		Title: "Old record",
		Sections: []sectionDoc{{
			Columns: 2,
			Blocks: []blockDoc{
				{Type: "image", Src: "https://cdn.example.com/a.webp"},
				{Type: "gallery", Images: []galleryImageDoc{{Src: "https://cdn.example.com/g.webp"}}},
			},
		}},
	}

	p, err := fromPersisted(doc)
	if err != nil {
		t.Fatalf("fromPersisted: %v", err)
	}
	if p.Tags == nil {
		t.Fatal("nil tags must come back as an empty slice")
	}
	if p.Version != models.SchemaVersion {
		t.Fatalf("version = %d, want %d", p.Version, models.SchemaVersion)
	}
	sec := p.Sections[0]
	if sec.ID == "" {
		t.Fatal("missing section id must be backfilled")
	}
	for i, b := range sec.Blocks {
		if b.BlockID() == "" {
			t.Fatalf("block %d id must be backfilled", i)
		}
	}
	gal := sec.Blocks[1].(models.GalleryBlock)
	if gal.Images[0].ID == "" {
		t.Fatal("gallery image id must be backfilled")
	}
}

func TestFromPersistedRejectsUnknownBlockType(t *testing.T) {
	doc := &projectDoc{
		ID: "bad-1",
		Sections: []sectionDoc{{
			Columns: 1,
			Blocks:  []blockDoc{{ID: "b1", Type: "embed"}},
		}},
	}
	if _, err := fromPersisted(doc); err == nil {
		t.Fatal("expected error for unknown block type")
	}
}
