package domain

import (
	"context"
	"log/slog"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

// Session holds the folding state of one image for as long as it is open.
type Session struct {
	image       *m.Image
	codec       LocationCodec
	registry    *FoldRegistry
	commands    *CommandLayer
	lifecycle   *LifecycleController
	unsubscribe func()
}

// OpenSession loads the saved folds of img and subscribes to pipeline so
// they are re-applied on every build. A store failure is logged and leaves
// the session without folds.
func OpenSession(ctx context.Context, img *m.Image, pipeline adapter.Pipeline, store adapter.Store) *Session {
	codec := NewImageCodec(img)
	registry := NewFoldRegistry(img, store, codec)

	if _, err := registry.Load(ctx); err != nil {
		slog.Error("starting without saved folds", "image", img.Name, "error", err)
		registry.Clear()
	}

	commands := NewCommandLayer(registry)
	lifecycle := NewLifecycleController(img, registry, pipeline, commands)

	return &Session{
		image:       img,
		codec:       codec,
		registry:    registry,
		commands:    commands,
		lifecycle:   lifecycle,
		unsubscribe: pipeline.Subscribe(lifecycle),
	}
}

// Image returns the session image.
func (s *Session) Image() *m.Image {
	return s.image
}

// Codec returns the location codec of the session image.
func (s *Session) Codec() LocationCodec {
	return s.codec
}

// Registry returns the folds of the session.
func (s *Session) Registry() *FoldRegistry {
	return s.registry
}

// Commands returns the fold actions of the session.
func (s *Session) Commands() *CommandLayer {
	return s.commands
}

// Close stops re-applying folds. The in-memory registry is released; saved
// folds stay in the store.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}

	s.registry.Clear()
}
