package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "gofold.dev/pkg/gofold/internal/model"
)

// SourceView displays the tree of one image and tracks a cursor over its
// rendered lines.
type SourceView struct {
	image    *m.Image
	pipeline Pipeline
	renderer Renderer

	tree   *m.Tree
	lines  []m.Line
	cursor int
}

// NewSourceView creates a view of img. Call Refresh with m.RefreshFull to
// build the first tree.
func NewSourceView(img *m.Image, pipeline Pipeline, renderer Renderer) *SourceView {
	return &SourceView{image: img, pipeline: pipeline, renderer: renderer}
}

// Image returns the displayed image.
func (v *SourceView) Image() *m.Image {
	return v.image
}

// Tree implements View.
func (v *SourceView) Tree() *m.Tree {
	return v.tree
}

// Lines returns the rendered lines.
func (v *SourceView) Lines() []m.Line {
	return v.lines
}

// Cursor returns the index of the cursor line.
func (v *SourceView) Cursor() int {
	return v.cursor
}

// CursorLocation implements View.
func (v *SourceView) CursorLocation() m.Location {
	if v.cursor < 0 || v.cursor >= len(v.lines) {
		return m.NoLocation
	}

	return v.lines[v.cursor].Anchor
}

// SetCursor moves the cursor to line index i, clamped to the rendered lines.
func (v *SourceView) SetCursor(i int) {
	v.cursor = min(max(i, 0), max(len(v.lines)-1, 0))
}

// MoveCursor moves the cursor by delta lines.
func (v *SourceView) MoveCursor(delta int) {
	v.SetCursor(v.cursor + delta)
}

// SeekSourceLine places the cursor on the first rendered line whose anchor
// lies on the given 1-based line of the image source.
func (v *SourceView) SeekSourceLine(line int) bool {
	for i, l := range v.lines {
		if l.Anchor.IsValid() && v.tree.Position(l.Anchor).Line == line {
			v.cursor = i
			return true
		}
	}

	return false
}

// Refresh implements View. A failed rebuild keeps the previous tree.
func (v *SourceView) Refresh(ctx context.Context, mode m.RefreshMode) error {
	anchor := v.CursorLocation()

	if mode == m.RefreshFull || v.tree == nil {
		tree, err := v.pipeline.Build(ctx, v.image)
		if err != nil {
			return fmt.Errorf("failed to rebuild %s: %w", v.image.Name, err)
		}

		v.tree = tree
	}

	lines, err := v.renderer.Render(v.tree)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", v.image.Name, err)
	}

	v.lines = lines
	v.restoreCursor(anchor)

	slog.Debug("refreshed view", "image", v.image.Name, "mode", mode.String(), "lines", len(lines))

	return nil
}

// Reload replaces the image source with src and rebuilds the tree.
func (v *SourceView) Reload(ctx context.Context, src []byte, hash string) error {
	if len(src) == 0 {
		return errors.New("refusing to reload an empty source")
	}

	previous, previousHash := v.image.Source, v.image.Hash
	v.image.Source, v.image.Hash = src, hash

	if err := v.Refresh(ctx, m.RefreshFull); err != nil {
		v.image.Source, v.image.Hash = previous, previousHash
		return err
	}

	return nil
}

// PopulatePopup asks the pipeline listeners which actions to offer at the cursor.
func (v *SourceView) PopulatePopup() *m.Popup {
	popup := &m.Popup{}
	v.pipeline.PopulatePopup(v, popup)

	return popup
}

func (v *SourceView) restoreCursor(anchor m.Location) {
	if anchor.IsValid() {
		for i, l := range v.lines {
			if l.Anchor == anchor {
				v.cursor = i
				return
			}
		}
	}

	v.SetCursor(v.cursor)
}
