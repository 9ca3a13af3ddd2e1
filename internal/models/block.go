package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// BlockType tags the closed set of block variants a section can hold.
type BlockType string

const (
	BlockImage   BlockType = "image"
	BlockVideo   BlockType = "video"
	BlockGallery BlockType = "gallery"
	BlockText    BlockType = "text"
)

type AspectRatio string

const (
	RatioAuto     AspectRatio = "auto"
	RatioSquare   AspectRatio = "1:1"
	RatioPortrait AspectRatio = "4:5"
	RatioWide     AspectRatio = "16:9"
	RatioCinema   AspectRatio = "21:9"
	RatioTall     AspectRatio = "3:4"
)

type ObjectFit string

const (
	FitCover   ObjectFit = "cover"
	FitContain ObjectFit = "contain"
)

type VideoSource string

const (
	VideoUpload  VideoSource = "upload"
	VideoYouTube VideoSource = "youtube"
	VideoVimeo   VideoSource = "vimeo"
)

type GalleryDisplayMode string

const (
	GalleryGrid    GalleryDisplayMode = "grid"
	GalleryMasonry GalleryDisplayMode = "masonry"
	GallerySlider  GalleryDisplayMode = "slider"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Block is the tagged union over the four block variants. The unexported
// marker keeps the set closed to this package so that switches over the
// variants stay exhaustive.
type Block interface {
	BlockID() string
	BlockType() BlockType
	CloneBlock() Block
	isBlock()
}

// BaseBlock carries the fields common to every variant. Blocks never
// size themselves; layout belongs to the owning section.
type BaseBlock struct {
	ID           string      `json:"id"`
	Type         BlockType   `json:"type"`
	Ratio        AspectRatio `json:"ratio"`
	BorderRadius int         `json:"borderRadius"`
	Padding      int         `json:"padding"`
	Background   string      `json:"background,omitempty"`
	Shadow       string      `json:"shadow,omitempty"`
	HoverEffect  bool        `json:"hoverEffect,omitempty"`
}

func (b BaseBlock) BlockID() string      { return b.ID }
func (b BaseBlock) BlockType() BlockType { return b.Type }

// Position is a fractional focal point, both axes in percent.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ImageBlock struct {
	BaseBlock
	Src       string    `json:"src"`
	Alt       string    `json:"alt,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Lightbox  bool      `json:"lightbox"`
	ObjectFit ObjectFit `json:"objectFit"`
	Position  *Position `json:"position,omitempty"`
}

func (b ImageBlock) isBlock() {}

func (b ImageBlock) CloneBlock() Block {
	if b.Position != nil {
		p := *b.Position
		b.Position = &p
	}
	return b
}

type VideoBlock struct {
	BaseBlock
	Source   VideoSource `json:"source"`
	Src      string      `json:"src"`
	Poster   string      `json:"poster,omitempty"`
	Autoplay bool        `json:"autoplay"`
	Loop     bool        `json:"loop"`
	Muted    bool        `json:"muted"`
	Controls bool        `json:"controls"`
}

func (b VideoBlock) isBlock() {}

func (b VideoBlock) CloneBlock() Block { return b }

// GalleryImage is one entry of a gallery block.
type GalleryImage struct {
	ID      string `json:"id"`
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type GalleryBlock struct {
	BaseBlock
	Images      []GalleryImage     `json:"images"`
	DisplayMode GalleryDisplayMode `json:"displayMode"`
	Gap         int                `json:"gap"`
	Columns     int                `json:"columns,omitempty"`
}

func (b GalleryBlock) isBlock() {}

func (b GalleryBlock) CloneBlock() Block {
	images := make([]GalleryImage, len(b.Images))
	copy(images, b.Images)
	b.Images = images
	return b
}

type TextBlock struct {
	BaseBlock
	Content    string    `json:"content"`
	TextAlign  TextAlign `json:"textAlign"`
	FontSize   int       `json:"fontSize,omitempty"`
	LineHeight float64   `json:"lineHeight,omitempty"`
}

func (b TextBlock) isBlock() {}

func (b TextBlock) CloneBlock() Block { return b }

// NewImageBlock returns an image block with the editor defaults.
func NewImageBlock() ImageBlock {
	return ImageBlock{
		BaseBlock: BaseBlock{
			ID:           uuid.New().String(),
			Type:         BlockImage,
			Ratio:        RatioAuto,
			BorderRadius: 8,
		},
		Lightbox:  false,
		ObjectFit: FitCover,
	}
}

// NewVideoBlock returns a video block with the editor defaults.
func NewVideoBlock() VideoBlock {
	return VideoBlock{
		BaseBlock: BaseBlock{
			ID:           uuid.New().String(),
			Type:         BlockVideo,
			Ratio:        RatioWide,
			BorderRadius: 8,
		},
		Source:   VideoUpload,
		Controls: true,
	}
}

// NewGalleryBlock returns a gallery block with the editor defaults.
func NewGalleryBlock() GalleryBlock {
	return GalleryBlock{
		BaseBlock: BaseBlock{
			ID:           uuid.New().String(),
			Type:         BlockGallery,
			Ratio:        RatioAuto,
			BorderRadius: 8,
		},
		Images:      []GalleryImage{},
		DisplayMode: GalleryGrid,
		Gap:         16,
		Columns:     3,
	}
}

// NewTextBlock returns a text block with the editor defaults.
func NewTextBlock() TextBlock {
	return TextBlock{
		BaseBlock: BaseBlock{
			ID:      uuid.New().String(),
			Type:    BlockText,
			Ratio:   RatioAuto,
			Padding: 16,
		},
		Content:   "<p>Enter your text here...</p>",
		TextAlign: AlignLeft,
	}
}

// NewBlock dispatches to the per-type factory.
func NewBlock(t BlockType) (Block, error) {
	switch t {
	case BlockImage:
		return NewImageBlock(), nil
	case BlockVideo:
		return NewVideoBlock(), nil
	case BlockGallery:
		return NewGalleryBlock(), nil
	case BlockText:
		return NewTextBlock(), nil
	default:
		return nil, fmt.Errorf("unknown block type %q", t)
	}
}

// DecodeBlock unmarshals one block from its JSON form, dispatching on
// the type tag.
func DecodeBlock(raw []byte) (Block, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	switch probe.Type {
	case BlockImage:
		var b ImageBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case BlockVideo:
		var b VideoBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case BlockGallery:
		var b GalleryBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case BlockText:
		var b TextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}
