package domain

import (
	"context"
	"fmt"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

// browser exposes an open image to interactive user interfaces.
type browser struct {
	session *Session
	view    *adapter.SourceView
	fs      adapter.SourceFSAdapter
	changes <-chan m.Path
}

func (b *browser) Title() string {
	return b.session.Image().Name
}

func (b *browser) Lines() []m.Line {
	return b.view.Lines()
}

func (b *browser) Cursor() int {
	return b.view.Cursor()
}

func (b *browser) MoveCursor(delta int) {
	b.view.MoveCursor(delta)
}

func (b *browser) Popup() []m.ActionName {
	return b.view.PopulatePopup().Actions
}

func (b *browser) Run(ctx context.Context, action m.ActionName) (bool, error) {
	if b.session.Commands().Update(b.view) != m.ActionEnabled {
		return false, nil
	}

	return b.session.Commands().Run(ctx, action, b.view)
}

func (b *browser) Changes() <-chan m.Path {
	return b.changes
}

func (b *browser) Reload(ctx context.Context) error {
	img := b.session.Image()

	src, err := b.fs.ReadFile(ctx, img.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", img.Name, err)
	}

	return b.view.Reload(ctx, src, b.fs.HashBytes(src))
}
