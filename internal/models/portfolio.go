package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is stamped on every project so future readers can
// detect schema drift.
const SchemaVersion = 1

const (
	MinColumns = 1
	MaxColumns = 4
)

// ErrInvalidColumns rejects section column counts outside 1..4.
var ErrInvalidColumns = fmt.Errorf("columns must be between %d and %d", MinColumns, MaxColumns)

type VerticalAlign string

const (
	AlignTop     VerticalAlign = "top"
	AlignMiddle  VerticalAlign = "center"
	AlignStretch VerticalAlign = "stretch"
)

// SectionOverride is a partial section layout applied at a breakpoint.
type SectionOverride struct {
	Columns *int `json:"columns,omitempty"`
	Gap     *int `json:"gap,omitempty"`
}

// ResponsiveOverrides narrows section layout for smaller viewports.
type ResponsiveOverrides struct {
	Tablet *SectionOverride `json:"tablet,omitempty"`
	Mobile *SectionOverride `json:"mobile,omitempty"`
}

// Section owns layout: column count bounds block capacity, blocks never
// size themselves. Invariant: len(Blocks) <= Columns.
type Section struct {
	ID            string               `json:"id"`
	Columns       int                  `json:"columns"`
	Gap           int                  `json:"gap"`
	MarginTop     int                  `json:"marginTop"`
	MarginBottom  int                  `json:"marginBottom"`
	VerticalAlign VerticalAlign        `json:"verticalAlign"`
	Blocks        []Block              `json:"blocks"`
	Responsive    *ResponsiveOverrides `json:"responsiveOverrides,omitempty"`
}

// Full reports whether the section is at block capacity.
func (s *Section) Full() bool { return len(s.Blocks) >= s.Columns }

// Clone deep-copies the section, blocks included.
func (s Section) Clone() Section {
	blocks := make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		blocks[i] = b.CloneBlock()
	}
	s.Blocks = blocks
	if s.Responsive != nil {
		r := ResponsiveOverrides{}
		if s.Responsive.Tablet != nil {
			t := cloneOverride(*s.Responsive.Tablet)
			r.Tablet = &t
		}
		if s.Responsive.Mobile != nil {
			m := cloneOverride(*s.Responsive.Mobile)
			r.Mobile = &m
		}
		s.Responsive = &r
	}
	return s
}

func cloneOverride(o SectionOverride) SectionOverride {
	if o.Columns != nil {
		v := *o.Columns
		o.Columns = &v
	}
	if o.Gap != nil {
		v := *o.Gap
		o.Gap = &v
	}
	return o
}

// UnmarshalJSON decodes the heterogeneous block list via the type tag.
func (s *Section) UnmarshalJSON(data []byte) error {
	type sectionAlias Section
	aux := struct {
		*sectionAlias
		Blocks []json.RawMessage `json:"blocks"`
	}{sectionAlias: (*sectionAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Blocks = make([]Block, 0, len(aux.Blocks))
	for _, raw := range aux.Blocks {
		b, err := DecodeBlock(raw)
		if err != nil {
			return err
		}
		s.Blocks = append(s.Blocks, b)
	}
	return nil
}

// Project is the top-level portfolio document.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Date          string    `json:"date"`
	CoverImage    string    `json:"coverImage"`
	CoverPosition string    `json:"coverPosition,omitempty"`
	Tags          []string  `json:"tags"`
	Featured      bool      `json:"featured"`
	Sections      []Section `json:"sections"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Version       int       `json:"version"`
}

// Clone deep-copies the project so editor snapshots never share nested
// structures.
func (p Project) Clone() Project {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	p.Tags = tags
	sections := make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		sections[i] = s.Clone()
	}
	p.Sections = sections
	return p
}

// AssetURLs collects every asset URL the project references: cover,
// image sources, gallery entries, video sources and posters. Used to
// keep the asset library's usage tracking in step with saves.
func (p *Project) AssetURLs() []string {
	seen := make(map[string]struct{})
	urls := make([]string, 0, 8)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	add(p.CoverImage)
	for _, s := range p.Sections {
		for _, b := range s.Blocks {
			switch blk := b.(type) {
			case ImageBlock:
				add(blk.Src)
			case VideoBlock:
				add(blk.Src)
				add(blk.Poster)
			case GalleryBlock:
				for _, img := range blk.Images {
					add(img.Src)
				}
			case TextBlock:
				// no media
			}
		}
	}
	return urls
}

// NewEmptyProject returns a blank project: no sections, scalar fields
// empty, both timestamps set to now.
func NewEmptyProject() Project {
	now := time.Now().UTC()
	return Project{
		ID:            uuid.New().String(),
		Date:          now.Format("2006-01-02"),
		CoverPosition: "center",
		Tags:          []string{},
		Sections:      []Section{},
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       SchemaVersion,
	}
}

// NewSection returns a section with default spacing and no blocks.
func NewSection(columns int) (Section, error) {
	if columns < MinColumns || columns > MaxColumns {
		return Section{}, ErrInvalidColumns
	}
	return Section{
		ID:            uuid.New().String(),
		Columns:       columns,
		Gap:           24,
		MarginTop:     40,
		MarginBottom:  40,
		VerticalAlign: AlignTop,
		Blocks:        []Block{},
	}, nil
}
