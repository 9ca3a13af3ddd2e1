package portfolio

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lueur-studio/core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The persisted document shapes form a closed set mirroring the model's
// node types. The document store rejects explicit nulls for optional
// fields, so absent values are stripped structurally via omitempty on a
// typed shape rather than by walking arbitrary JSON: a generic walker
// cannot know which fields a block variant requires.

type projectDoc struct {
	ID            string             `bson:"_id"`
	Title         string             `bson:"title,omitempty"`
	Description   string             `bson:"description,omitempty"`
	Category      string             `bson:"category,omitempty"`
	Date          string             `bson:"date,omitempty"`
	ImageURL      string             `bson:"imageUrl,omitempty"`
	CoverPosition string             `bson:"coverPosition,omitempty"`
	Tags          []string           `bson:"tags"`
	Featured      bool               `bson:"featured"`
	Sections      []sectionDoc       `bson:"sections"`
	CreatedAt     primitive.DateTime `bson:"createdAt"`
	UpdatedAt     primitive.DateTime `bson:"updatedAt"`
	Version       int                `bson:"version"`
}

type sectionDoc struct {
	ID            string        `bson:"id,omitempty"`
	Columns       int           `bson:"columns"`
	Gap           int           `bson:"gap,omitempty"`
	MarginTop     int           `bson:"marginTop,omitempty"`
	MarginBottom  int           `bson:"marginBottom,omitempty"`
	VerticalAlign string        `bson:"verticalAlign,omitempty"`
	Blocks        []blockDoc    `bson:"blocks"`
	Responsive    *overridesDoc `bson:"responsiveOverrides,omitempty"`
}

type overridesDoc struct {
	Tablet *overrideDoc `bson:"tablet,omitempty"`
	Mobile *overrideDoc `bson:"mobile,omitempty"`
}

type overrideDoc struct {
	Columns *int `bson:"columns,omitempty"`
	Gap     *int `bson:"gap,omitempty"`
}

// blockDoc is the flat superset of all block variants; the type tag
// decides which fields are live.
type blockDoc struct {
	ID           string `bson:"id,omitempty"`
	Type         string `bson:"type"`
	Ratio        string `bson:"ratio,omitempty"`
	BorderRadius int    `bson:"borderRadius,omitempty"`
	Padding      int    `bson:"padding,omitempty"`
	Background   string `bson:"background,omitempty"`
	Shadow       string `bson:"shadow,omitempty"`
	HoverEffect  bool   `bson:"hoverEffect,omitempty"`

	// image
	Src       string       `bson:"src,omitempty"`
	Alt       string       `bson:"alt,omitempty"`
	Caption   string       `bson:"caption,omitempty"`
	Lightbox  bool         `bson:"lightbox,omitempty"`
	ObjectFit string       `bson:"objectFit,omitempty"`
	Position  *positionDoc `bson:"position,omitempty"`

	// video
	Source   string `bson:"source,omitempty"`
	Poster   string `bson:"poster,omitempty"`
	Autoplay bool   `bson:"autoplay,omitempty"`
	Loop     bool   `bson:"loop,omitempty"`
	Muted    bool   `bson:"muted,omitempty"`
	Controls bool   `bson:"controls,omitempty"`

	// gallery
	Images      []galleryImageDoc `bson:"images,omitempty"`
	DisplayMode string            `bson:"displayMode,omitempty"`
	Gap         int               `bson:"gap,omitempty"`
	Columns     int               `bson:"columns,omitempty"`

	// text
	Content    string  `bson:"content,omitempty"`
	TextAlign  string  `bson:"textAlign,omitempty"`
	FontSize   int     `bson:"fontSize,omitempty"`
	LineHeight float64 `bson:"lineHeight,omitempty"`
}

type positionDoc struct {
	X float64 `bson:"x"`
	Y float64 `bson:"y"`
}

type galleryImageDoc struct {
	ID      string `bson:"id,omitempty"`
	Src     string `bson:"src,omitempty"`
	Alt     string `bson:"alt,omitempty"`
	Caption string `bson:"caption,omitempty"`
}

// toPersisted converts a project snapshot into its on-disk document:
// timestamps become native DateTimes and absent optionals are stripped.
func toPersisted(p *models.Project) (*projectDoc, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := &projectDoc{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		Date:          p.Date,
		ImageURL:      p.CoverImage,
		CoverPosition: p.CoverPosition,
		Tags:          tags,
		Featured:      p.Featured,
		Sections:      make([]sectionDoc, 0, len(p.Sections)),
		CreatedAt:     primitive.NewDateTimeFromTime(p.CreatedAt),
		UpdatedAt:     primitive.NewDateTimeFromTime(p.UpdatedAt),
		Version:       p.Version,
	}
	for i := range p.Sections {
		sd, err := sectionToDoc(&p.Sections[i])
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, sd)
	}
	return doc, nil
}

func sectionToDoc(s *models.Section) (sectionDoc, error) {
	doc := sectionDoc{
		ID:            s.ID,
		Columns:       s.Columns,
		Gap:           s.Gap,
		MarginTop:     s.MarginTop,
		MarginBottom:  s.MarginBottom,
		VerticalAlign: string(s.VerticalAlign),
		Blocks:        make([]blockDoc, 0, len(s.Blocks)),
	}
	if s.Responsive != nil {
		o := overridesDoc{}
		if s.Responsive.Tablet != nil {
			o.Tablet = &overrideDoc{Columns: s.Responsive.Tablet.Columns, Gap: s.Responsive.Tablet.Gap}
		}
		if s.Responsive.Mobile != nil {
			o.Mobile = &overrideDoc{Columns: s.Responsive.Mobile.Columns, Gap: s.Responsive.Mobile.Gap}
		}
		doc.Responsive = &o
	}
	for _, b := range s.Blocks {
		bd, err := blockToDoc(b)
		if err != nil {
			return sectionDoc{}, err
		}
		doc.Blocks = append(doc.Blocks, bd)
	}
	return doc, nil
}

func blockToDoc(b models.Block) (blockDoc, error) {
	switch blk := b.(type) {
	case models.ImageBlock:
		doc := baseToDoc(blk.BaseBlock)
		doc.Src = blk.Src
		doc.Alt = blk.Alt
		doc.Caption = blk.Caption
		doc.Lightbox = blk.Lightbox
		doc.ObjectFit = string(blk.ObjectFit)
		if blk.Position != nil {
			doc.Position = &positionDoc{X: blk.Position.X, Y: blk.Position.Y}
		}
		return doc, nil
	case models.VideoBlock:
		doc := baseToDoc(blk.BaseBlock)
		doc.Source = string(blk.Source)
		doc.Src = blk.Src
		doc.Poster = blk.Poster
		doc.Autoplay = blk.Autoplay
		doc.Loop = blk.Loop
		doc.Muted = blk.Muted
		doc.Controls = blk.Controls
		return doc, nil
	case models.GalleryBlock:
		doc := baseToDoc(blk.BaseBlock)
		doc.Images = make([]galleryImageDoc, 0, len(blk.Images))
		for _, img := range blk.Images {
			doc.Images = append(doc.Images, galleryImageDoc(img))
		}
		doc.DisplayMode = string(blk.DisplayMode)
		doc.Gap = blk.Gap
		doc.Columns = blk.Columns
		return doc, nil
	case models.TextBlock:
		doc := baseToDoc(blk.BaseBlock)
		doc.Content = blk.Content
		doc.TextAlign = string(blk.TextAlign)
		doc.FontSize = blk.FontSize
		doc.LineHeight = blk.LineHeight
		return doc, nil
	default:
		return blockDoc{}, fmt.Errorf("unknown block variant %T", b)
	}
}

func baseToDoc(base models.BaseBlock) blockDoc {
	return blockDoc{
		ID:           base.ID,
		Type:         string(base.Type),
		Ratio:        string(base.Ratio),
		BorderRadius: base.BorderRadius,
		Padding:      base.Padding,
		Background:   base.Background,
		Shadow:       base.Shadow,
		HoverEffect:  base.HoverEffect,
	}
}

// fromPersisted converts an on-disk document back into a project.
// Records written before the builder existed can lack section, block
// and gallery-image ids; those are backfilled with fresh ids, a
// one-way upgrade.
func fromPersisted(doc *projectDoc) (*models.Project, error) {
	p := &models.Project{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		Category:      doc.Category,
		Date:          doc.Date,
		CoverImage:    doc.ImageURL,
		CoverPosition: doc.CoverPosition,
		Tags:          doc.Tags,
		Featured:      doc.Featured,
		Sections:      make([]models.Section, 0, len(doc.Sections)),
		CreatedAt:     doc.CreatedAt.Time().UTC(),
		UpdatedAt:     doc.UpdatedAt.Time().UTC(),
		Version:       doc.Version,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Version == 0 {
		p.Version = models.SchemaVersion
	}
	for i := range doc.Sections {
		sec, err := sectionFromDoc(&doc.Sections[i])
		if err != nil {
			return nil, err
		}
		p.Sections = append(p.Sections, sec)
	}
	return p, nil
}

func sectionFromDoc(doc *sectionDoc) (models.Section, error) {
	sec := models.Section{
		ID:            orNewID(doc.ID),
		Columns:       doc.Columns,
		Gap:           doc.Gap,
		MarginTop:     doc.MarginTop,
		MarginBottom:  doc.MarginBottom,
		VerticalAlign: models.VerticalAlign(doc.VerticalAlign),
		Blocks:        make([]models.Block, 0, len(doc.Blocks)),
	}
	if doc.Responsive != nil {
		r := models.ResponsiveOverrides{}
		if doc.Responsive.Tablet != nil {
			r.Tablet = &models.SectionOverride{Columns: doc.Responsive.Tablet.Columns, Gap: doc.Responsive.Tablet.Gap}
		}
		if doc.Responsive.Mobile != nil {
			r.Mobile = &models.SectionOverride{Columns: doc.Responsive.Mobile.Columns, Gap: doc.Responsive.Mobile.Gap}
		}
		sec.Responsive = &r
	}
	for i := range doc.Blocks {
		b, err := blockFromDoc(&doc.Blocks[i])
		if err != nil {
			return models.Section{}, err
		}
		sec.Blocks = append(sec.Blocks, b)
	}
	return sec, nil
}

func blockFromDoc(doc *blockDoc) (models.Block, error) {
	base := models.BaseBlock{
		ID:           orNewID(doc.ID),
		Type:         models.BlockType(doc.Type),
		Ratio:        models.AspectRatio(doc.Ratio),
		BorderRadius: doc.BorderRadius,
		Padding:      doc.Padding,
		Background:   doc.Background,
		Shadow:       doc.Shadow,
		HoverEffect:  doc.HoverEffect,
	}

	switch models.BlockType(doc.Type) {
	case models.BlockImage:
		blk := models.ImageBlock{
			BaseBlock: base,
			Src:       doc.Src,
			Alt:       doc.Alt,
			Caption:   doc.Caption,
			Lightbox:  doc.Lightbox,
			ObjectFit: models.ObjectFit(doc.ObjectFit),
		}
		if doc.Position != nil {
			blk.Position = &models.Position{X: doc.Position.X, Y: doc.Position.Y}
		}
		return blk, nil
	case models.BlockVideo:
		return models.VideoBlock{
			BaseBlock: base,
			Source:    models.VideoSource(doc.Source),
			Src:       doc.Src,
			Poster:    doc.Poster,
			Autoplay:  doc.Autoplay,
			Loop:      doc.Loop,
			Muted:     doc.Muted,
			Controls:  doc.Controls,
		}, nil
	case models.BlockGallery:
		blk := models.GalleryBlock{
			BaseBlock:   base,
			Images:      make([]models.GalleryImage, 0, len(doc.Images)),
			DisplayMode: models.GalleryDisplayMode(doc.DisplayMode),
			Gap:         doc.Gap,
			Columns:     doc.Columns,
		}
		for _, img := range doc.Images {
			gi := models.GalleryImage(img)
			gi.ID = orNewID(gi.ID)
			blk.Images = append(blk.Images, gi)
		}
		return blk, nil
	case models.BlockText:
		return models.TextBlock{
			BaseBlock:  base,
			Content:    doc.Content,
			TextAlign:  models.TextAlign(doc.TextAlign),
			FontSize:   doc.FontSize,
			LineHeight: doc.LineHeight,
		}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q in stored document", doc.Type)
	}
}

func orNewID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}
