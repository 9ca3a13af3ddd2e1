// Package portfolio owns the page-builder document flow: the editor
// state machine over one project aggregate, and the persistence adapter
// that moves project snapshots in and out of the document database.
package portfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/lueur-studio/core/internal/models"
)

// ErrSectionNotFound reports an unknown section id on an operation that
// must name its target.
var ErrSectionNotFound = errors.New("section not found")

// CapacityError rejects adding or moving a block into a section that is
// already at column capacity. The state is left unchanged.
type CapacityError struct {
	SectionID string
	Columns   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("section %s is full (%d blocks max)", e.SectionID, e.Columns)
}

// DraggedItem describes an in-flight drag.
type DraggedItem struct {
	Kind string `json:"type"` // "section" | "block"
	ID   string `json:"id"`
}

// EditorState is one immutable snapshot of an editing session: the
// project plus selection and drag state. Operations take the current
// state by value and return a fresh snapshot; nested structures are
// never mutated in place, which keeps selection and undo semantics
// tractable. The machine is synchronous and assumes a single writer
// per aggregate.
type EditorState struct {
	Project           models.Project `json:"project"`
	SelectedSectionID string         `json:"selectedSectionId,omitempty"`
	SelectedBlockID   string         `json:"selectedBlockId,omitempty"`
	IsDragging        bool           `json:"isDragging"`
	Dragged           *DraggedItem   `json:"draggedItem,omitempty"`
}

// NewEditorState starts a session. A nil project begins from an empty
// one.
func NewEditorState(p *models.Project) EditorState {
	if p == nil {
		return EditorState{Project: models.NewEmptyProject()}
	}
	return EditorState{Project: p.Clone()}
}

// LoadProject replaces the aggregate and resets selection and drag
// state.
func (s EditorState) LoadProject(p models.Project) EditorState {
	return EditorState{Project: p.Clone()}
}

// ProjectMetaPatch shallow-merges scalar project fields. Only the
// fields listed here are reachable through the editor; structural
// changes go through section/block operations.
type ProjectMetaPatch struct {
	Title         *string
	Description   *string
	Category      *string
	Date          *string
	CoverImage    *string
	CoverPosition *string
	Tags          []string
	Featured      *bool
}

// UpdateProjectMetadata merges the patch and stamps updatedAt.
func (s EditorState) UpdateProjectMetadata(patch ProjectMetaPatch) EditorState {
	p := s.Project.Clone()
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.CoverImage != nil {
		p.CoverImage = *patch.CoverImage
	}
	if patch.CoverPosition != nil {
		p.CoverPosition = *patch.CoverPosition
	}
	if patch.Tags != nil {
		tags := make([]string, len(patch.Tags))
		copy(tags, patch.Tags)
		p.Tags = tags
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s
}

// AddSection inserts a new section immediately before the selected one,
// or appends when nothing is selected. The new section becomes the
// selection; any block selection is cleared.
func (s EditorState) AddSection(columns int) (EditorState, error) {
	section, err := models.NewSection(columns)
	if err != nil {
		return s, err
	}

	p := s.Project.Clone()
	insertAt := len(p.Sections)
	if s.SelectedSectionID != "" {
		if i := sectionIndex(p.Sections, s.SelectedSectionID); i >= 0 {
			insertAt = i
		}
	}
	p.Sections = append(p.Sections, models.Section{})
	copy(p.Sections[insertAt+1:], p.Sections[insertAt:])
	p.Sections[insertAt] = section
	p.UpdatedAt = time.Now().UTC()

	s.Project = p
	s.SelectedSectionID = section.ID
	s.SelectedBlockID = ""
	return s, nil
}

// SectionPatch is a partial section layout update.
type SectionPatch struct {
	Columns       *int
	Gap           *int
	MarginTop     *int
	MarginBottom  *int
	VerticalAlign *models.VerticalAlign
	Responsive    *models.ResponsiveOverrides
}

// UpdateSection merges layout fields. Decreasing columns below the
// current block count truncates trailing blocks so the capacity
// invariant is re-established centrally, not per block type.
func (s EditorState) UpdateSection(sectionID string, patch SectionPatch) (EditorState, error) {
	if patch.Columns != nil && (*patch.Columns < models.MinColumns || *patch.Columns > models.MaxColumns) {
		return s, models.ErrInvalidColumns
	}

	p := s.Project.Clone()
	i := sectionIndex(p.Sections, sectionID)
	if i < 0 {
		return s, nil
	}

	sec := &p.Sections[i]
	if patch.Columns != nil {
		sec.Columns = *patch.Columns
		if len(sec.Blocks) > sec.Columns {
			sec.Blocks = sec.Blocks[:sec.Columns]
		}
	}
	if patch.Gap != nil {
		sec.Gap = *patch.Gap
	}
	if patch.MarginTop != nil {
		sec.MarginTop = *patch.MarginTop
	}
	if patch.MarginBottom != nil {
		sec.MarginBottom = *patch.MarginBottom
	}
	if patch.VerticalAlign != nil {
		sec.VerticalAlign = *patch.VerticalAlign
	}
	if patch.Responsive != nil {
		sec.Responsive = patch.Responsive
	}
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s, nil
}

// DeleteSection removes the section and its blocks. Deleting the
// selected section clears both selections.
func (s EditorState) DeleteSection(sectionID string) EditorState {
	p := s.Project.Clone()
	i := sectionIndex(p.Sections, sectionID)
	if i < 0 {
		return s
	}
	p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
	p.UpdatedAt = time.Now().UTC()

	s.Project = p
	if s.SelectedSectionID == sectionID {
		s.SelectedSectionID = ""
	}
	s.SelectedBlockID = ""
	return s
}

// MoveSectionUp swaps the section with its predecessor; no-op at the
// top.
func (s EditorState) MoveSectionUp(sectionID string) EditorState {
	i := sectionIndex(s.Project.Sections, sectionID)
	if i <= 0 {
		return s
	}
	p := s.Project.Clone()
	p.Sections[i-1], p.Sections[i] = p.Sections[i], p.Sections[i-1]
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s
}

// MoveSectionDown swaps the section with its successor; no-op at the
// bottom.
func (s EditorState) MoveSectionDown(sectionID string) EditorState {
	i := sectionIndex(s.Project.Sections, sectionID)
	if i < 0 || i >= len(s.Project.Sections)-1 {
		return s
	}
	p := s.Project.Clone()
	p.Sections[i], p.Sections[i+1] = p.Sections[i+1], p.Sections[i]
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s
}

// MoveSection repositions a section to an arbitrary index (drag and
// drop). Out-of-range indices are a no-op.
func (s EditorState) MoveSection(fromIndex, toIndex int) EditorState {
	n := len(s.Project.Sections)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return s
	}
	p := s.Project.Clone()
	moved := p.Sections[fromIndex]
	p.Sections = append(p.Sections[:fromIndex], p.Sections[fromIndex+1:]...)
	p.Sections = append(p.Sections, models.Section{})
	copy(p.Sections[toIndex+1:], p.Sections[toIndex:])
	p.Sections[toIndex] = moved
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s
}

// AddBlock appends a default block of the given type. A full section
// rejects the add with CapacityError and the state is unchanged. The
// new block and its section become the selection.
func (s EditorState) AddBlock(sectionID string, t models.BlockType) (EditorState, error) {
	block, err := models.NewBlock(t)
	if err != nil {
		return s, err
	}

	i := sectionIndex(s.Project.Sections, sectionID)
	if i < 0 {
		return s, ErrSectionNotFound
	}
	if s.Project.Sections[i].Full() {
		return s, &CapacityError{SectionID: sectionID, Columns: s.Project.Sections[i].Columns}
	}

	p := s.Project.Clone()
	p.Sections[i].Blocks = append(p.Sections[i].Blocks, block)
	p.UpdatedAt = time.Now().UTC()

	s.Project = p
	s.SelectedSectionID = sectionID
	s.SelectedBlockID = block.BlockID()
	return s, nil
}

// BlockPatch is a partial update over the union of block fields. Fields
// that do not apply to the target's variant are ignored.
type BlockPatch struct {
	// base
	Ratio        *models.AspectRatio
	BorderRadius *int
	Padding      *int
	Background   *string
	Shadow       *string
	HoverEffect  *bool
	// image / video
	Src       *string
	Alt       *string
	Caption   *string
	Lightbox  *bool
	ObjectFit *models.ObjectFit
	Position  *models.Position
	Source    *models.VideoSource
	Poster    *string
	Autoplay  *bool
	Loop      *bool
	Muted     *bool
	Controls  *bool
	// gallery
	Images      []models.GalleryImage
	DisplayMode *models.GalleryDisplayMode
	Gap         *int
	Columns     *int
	// text
	Content    *string
	TextAlign  *models.TextAlign
	FontSize   *int
	LineHeight *float64
}

// UpdateBlock merges the patch into whichever block matches the id.
// The search spans all sections since callers do not track ownership.
func (s EditorState) UpdateBlock(blockID string, patch BlockPatch) EditorState {
	p := s.Project.Clone()
	for si := range p.Sections {
		for bi, b := range p.Sections[si].Blocks {
			if b.BlockID() != blockID {
				continue
			}
			p.Sections[si].Blocks[bi] = applyBlockPatch(b, patch)
			p.UpdatedAt = time.Now().UTC()
			s.Project = p
			return s
		}
	}
	return s
}

func applyBlockPatch(b models.Block, patch BlockPatch) models.Block {
	switch blk := b.(type) {
	case models.ImageBlock:
		applyBasePatch(&blk.BaseBlock, patch)
		if patch.Src != nil {
			blk.Src = *patch.Src
		}
		if patch.Alt != nil {
			blk.Alt = *patch.Alt
		}
		if patch.Caption != nil {
			blk.Caption = *patch.Caption
		}
		if patch.Lightbox != nil {
			blk.Lightbox = *patch.Lightbox
		}
		if patch.ObjectFit != nil {
			blk.ObjectFit = *patch.ObjectFit
		}
		if patch.Position != nil {
			pos := *patch.Position
			blk.Position = &pos
		}
		return blk
	case models.VideoBlock:
		applyBasePatch(&blk.BaseBlock, patch)
		if patch.Source != nil {
			blk.Source = *patch.Source
		}
		if patch.Src != nil {
			blk.Src = *patch.Src
		}
		if patch.Poster != nil {
			blk.Poster = *patch.Poster
		}
		if patch.Autoplay != nil {
			blk.Autoplay = *patch.Autoplay
		}
		if patch.Loop != nil {
			blk.Loop = *patch.Loop
		}
		if patch.Muted != nil {
			blk.Muted = *patch.Muted
		}
		if patch.Controls != nil {
			blk.Controls = *patch.Controls
		}
		return blk
	case models.GalleryBlock:
		applyBasePatch(&blk.BaseBlock, patch)
		if patch.Images != nil {
			images := make([]models.GalleryImage, len(patch.Images))
			copy(images, patch.Images)
			blk.Images = images
		}
		if patch.DisplayMode != nil {
			blk.DisplayMode = *patch.DisplayMode
		}
		if patch.Gap != nil {
			blk.Gap = *patch.Gap
		}
		if patch.Columns != nil {
			blk.Columns = *patch.Columns
		}
		return blk
	case models.TextBlock:
		applyBasePatch(&blk.BaseBlock, patch)
		if patch.Content != nil {
			blk.Content = *patch.Content
		}
		if patch.TextAlign != nil {
			blk.TextAlign = *patch.TextAlign
		}
		if patch.FontSize != nil {
			blk.FontSize = *patch.FontSize
		}
		if patch.LineHeight != nil {
			blk.LineHeight = *patch.LineHeight
		}
		return blk
	default:
		return b
	}
}

func applyBasePatch(base *models.BaseBlock, patch BlockPatch) {
	if patch.Ratio != nil {
		base.Ratio = *patch.Ratio
	}
	if patch.BorderRadius != nil {
		base.BorderRadius = *patch.BorderRadius
	}
	if patch.Padding != nil {
		base.Padding = *patch.Padding
	}
	if patch.Background != nil {
		base.Background = *patch.Background
	}
	if patch.Shadow != nil {
		base.Shadow = *patch.Shadow
	}
	if patch.HoverEffect != nil {
		base.HoverEffect = *patch.HoverEffect
	}
}

// DeleteBlock removes the block from its section and clears the block
// selection if it was selected.
func (s EditorState) DeleteBlock(blockID string) EditorState {
	p := s.Project.Clone()
	for si := range p.Sections {
		for bi, b := range p.Sections[si].Blocks {
			if b.BlockID() != blockID {
				continue
			}
			blocks := p.Sections[si].Blocks
			p.Sections[si].Blocks = append(blocks[:bi], blocks[bi+1:]...)
			p.UpdatedAt = time.Now().UTC()
			s.Project = p
			if s.SelectedBlockID == blockID {
				s.SelectedBlockID = ""
			}
			return s
		}
	}
	return s
}

// ChangeBlockType replaces the block with a fresh default of the new
// type, preserving only the id. Deliberately destructive: the old
// variant's fields do not map onto the new one.
func (s EditorState) ChangeBlockType(blockID string, newType models.BlockType) (EditorState, error) {
	replacement, err := models.NewBlock(newType)
	if err != nil {
		return s, err
	}

	p := s.Project.Clone()
	for si := range p.Sections {
		for bi, b := range p.Sections[si].Blocks {
			if b.BlockID() != blockID {
				continue
			}
			p.Sections[si].Blocks[bi] = withBlockID(replacement, b.BlockID())
			p.UpdatedAt = time.Now().UTC()
			s.Project = p
			return s, nil
		}
	}
	return s, nil
}

func withBlockID(b models.Block, id string) models.Block {
	switch blk := b.(type) {
	case models.ImageBlock:
		blk.ID = id
		return blk
	case models.VideoBlock:
		blk.ID = id
		return blk
	case models.GalleryBlock:
		blk.ID = id
		return blk
	case models.TextBlock:
		blk.ID = id
		return blk
	default:
		return b
	}
}

// MoveBlockWithinSection repositions a block inside one section.
// Out-of-range indices are a no-op.
func (s EditorState) MoveBlockWithinSection(sectionID string, fromIndex, toIndex int) EditorState {
	i := sectionIndex(s.Project.Sections, sectionID)
	if i < 0 {
		return s
	}
	n := len(s.Project.Sections[i].Blocks)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return s
	}

	p := s.Project.Clone()
	blocks := p.Sections[i].Blocks
	moved := blocks[fromIndex]
	blocks = append(blocks[:fromIndex], blocks[fromIndex+1:]...)
	blocks = append(blocks, nil)
	copy(blocks[toIndex+1:], blocks[toIndex:])
	blocks[toIndex] = moved
	p.Sections[i].Blocks = blocks
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s
}

// MoveBlockBetweenSections moves a block from one section into another
// at the given index. A full destination rejects the move with
// CapacityError and the state is unchanged.
func (s EditorState) MoveBlockBetweenSections(fromID, toID, blockID string, toIndex int) (EditorState, error) {
	fi := sectionIndex(s.Project.Sections, fromID)
	ti := sectionIndex(s.Project.Sections, toID)
	if fi < 0 || ti < 0 {
		return s, ErrSectionNotFound
	}
	if s.Project.Sections[ti].Full() {
		return s, &CapacityError{SectionID: toID, Columns: s.Project.Sections[ti].Columns}
	}

	p := s.Project.Clone()
	var moved models.Block
	blocks := p.Sections[fi].Blocks
	for bi, b := range blocks {
		if b.BlockID() == blockID {
			moved = b
			p.Sections[fi].Blocks = append(blocks[:bi], blocks[bi+1:]...)
			break
		}
	}
	if moved == nil {
		return s, nil
	}

	dst := p.Sections[ti].Blocks
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dst) {
		toIndex = len(dst)
	}
	dst = append(dst, nil)
	copy(dst[toIndex+1:], dst[toIndex:])
	dst[toIndex] = moved
	p.Sections[ti].Blocks = dst
	p.UpdatedAt = time.Now().UTC()
	s.Project = p
	return s, nil
}

// SelectSection selects a section and clears any block selection.
func (s EditorState) SelectSection(sectionID string) EditorState {
	s.SelectedSectionID = sectionID
	s.SelectedBlockID = ""
	return s
}

// SelectBlock selects a block, which implicitly selects its owning
// section.
func (s EditorState) SelectBlock(blockID, sectionID string) EditorState {
	s.SelectedSectionID = sectionID
	s.SelectedBlockID = blockID
	return s
}

// ClearSelection drops both selections.
func (s EditorState) ClearSelection() EditorState {
	s.SelectedSectionID = ""
	s.SelectedBlockID = ""
	return s
}

// BeginDrag marks a drag in progress.
func (s EditorState) BeginDrag(kind, id string) EditorState {
	s.IsDragging = true
	s.Dragged = &DraggedItem{Kind: kind, ID: id}
	return s
}

// EndDrag clears drag state.
func (s EditorState) EndDrag() EditorState {
	s.IsDragging = false
	s.Dragged = nil
	return s
}

// SelectedSection resolves the selected section, or nil.
func (s *EditorState) SelectedSection() *models.Section {
	if s.SelectedSectionID == "" {
		return nil
	}
	if i := sectionIndex(s.Project.Sections, s.SelectedSectionID); i >= 0 {
		return &s.Project.Sections[i]
	}
	return nil
}

// SelectedBlock resolves the selected block, or nil.
func (s *EditorState) SelectedBlock() models.Block {
	if s.SelectedBlockID == "" {
		return nil
	}
	for _, sec := range s.Project.Sections {
		for _, b := range sec.Blocks {
			if b.BlockID() == s.SelectedBlockID {
				return b
			}
		}
	}
	return nil
}

func sectionIndex(sections []models.Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}
