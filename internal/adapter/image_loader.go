package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	m "gofold.dev/pkg/gofold/internal/model"
)

// ImageLoader loads source files as images laid out in one position space.
type ImageLoader interface {
	// Load reads paths and assigns each image a base after the images
	// before it, so the same file gets a different base depending on what
	// is loaded alongside it.
	Load(ctx context.Context, paths ...m.Path) ([]*m.Image, error)
}

// LocalImageLoader loads images from the local file system.
type LocalImageLoader struct {
	fs      SourceFSAdapter
	workers int
}

// NewLocalImageLoader creates a loader reading through fs with up to workers
// concurrent reads. A non-positive workers value reads one file at a time.
func NewLocalImageLoader(fs SourceFSAdapter, workers int) *LocalImageLoader {
	return &LocalImageLoader{fs: fs, workers: max(workers, 1)}
}

// Load implements ImageLoader.
func (l *LocalImageLoader) Load(ctx context.Context, paths ...m.Path) ([]*m.Image, error) {
	if len(paths) == 0 {
		return nil, errors.New("no source files to load")
	}

	images := make([]*m.Image, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, path := range paths {
		g.Go(func() error {
			img, err := l.read(gctx, path)
			if err != nil {
				return err
			}

			images[i] = img

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Bases are assigned in argument order so the layout does not depend on
	// which read finished first.
	base := 1
	for _, img := range images {
		img.Base = base
		base += img.Size() + 1

		slog.Debug("loaded image", "image", img.Name, "base", fmt.Sprintf("%#x", img.Base), "size", img.Size())
	}

	return images, nil
}

func (l *LocalImageLoader) read(ctx context.Context, path m.Path) (*m.Image, error) {
	abs, err := l.fs.AbsPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	src, err := l.fs.ReadFile(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &m.Image{
		Name:   l.imageName(ctx, abs),
		Path:   abs,
		Source: src,
		Hash:   l.fs.HashBytes(src),
	}, nil
}

// imageName names the image after its path inside the project, falling back
// to the file name outside of any module.
func (l *LocalImageLoader) imageName(ctx context.Context, abs m.Path) string {
	root, err := l.fs.FindProjectRoot(ctx, abs)
	if err == nil {
		if rel, err := l.fs.RelPath(ctx, root, abs); err == nil {
			return filepath.ToSlash(string(rel))
		}
	}

	return filepath.Base(string(abs))
}
