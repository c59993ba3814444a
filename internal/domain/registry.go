package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

const (
	namespacePrefix = "$ gofolded:"

	// TagFolds is the store tag of the fold key blob.
	TagFolds byte = 'I'
	// TagHash is the store tag of the source hash recorded with the folds.
	TagHash byte = 'H'
)

// Namespace returns the store namespace holding the folds of img.
func Namespace(img *m.Image) string {
	return namespacePrefix + img.Name
}

// FoldRegistry is the ordered set of folded block locations of one image.
// Every change is written through to the store.
type FoldRegistry struct {
	image *m.Image
	store adapter.Store
	codec LocationCodec

	folds []m.Location
}

// NewFoldRegistry creates an empty registry for img.
func NewFoldRegistry(img *m.Image, store adapter.Store, codec LocationCodec) *FoldRegistry {
	return &FoldRegistry{image: img, store: store, codec: codec}
}

// Load replaces the registry contents with the folds saved for the image.
// Nothing saved yields an empty registry.
func (r *FoldRegistry) Load(ctx context.Context) ([]m.Location, error) {
	r.folds = nil

	blob, err := r.store.Get(ctx, Namespace(r.image), TagFolds)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load folds of %s: %w", r.image.Name, err)
	}

	r.checkHash(ctx)

	for _, key := range BlobToKeys(blob) {
		loc, err := r.codec.Decode(key)
		if err != nil {
			slog.Warn("dropping fold", "image", r.image.Name, "key", uint64(key), "error", err)
			continue
		}

		if !slices.Contains(r.folds, loc) {
			r.folds = append(r.folds, loc)
		}
	}

	slog.Debug("loaded folds", "image", r.image.Name, "count", len(r.folds))

	return r.All(), nil
}

func (r *FoldRegistry) checkHash(ctx context.Context) {
	saved, err := r.store.Get(ctx, Namespace(r.image), TagHash)
	if err != nil || r.image.Hash == "" {
		return
	}

	if string(saved) != r.image.Hash {
		slog.Warn("source changed since folds were saved", "image", r.image.Name)
	}
}

// Add registers loc and saves the registry. The location stays registered
// even when saving fails.
func (r *FoldRegistry) Add(ctx context.Context, loc m.Location) error {
	if r.Contains(loc) {
		return nil
	}

	if _, err := r.codec.Encode(loc); err != nil {
		return err
	}

	r.folds = append(r.folds, loc)

	return r.save(ctx)
}

// Remove unregisters loc and saves the registry. Removing an unknown
// location only saves.
func (r *FoldRegistry) Remove(ctx context.Context, loc m.Location) error {
	if i := slices.Index(r.folds, loc); i >= 0 {
		r.folds = slices.Delete(r.folds, i, i+1)
	}

	return r.save(ctx)
}

// Contains reports whether loc is folded.
func (r *FoldRegistry) Contains(loc m.Location) bool {
	return slices.Contains(r.folds, loc)
}

// All returns the folded locations in the order they were added.
func (r *FoldRegistry) All() []m.Location {
	return slices.Clone(r.folds)
}

// Len returns the number of folds.
func (r *FoldRegistry) Len() int {
	return len(r.folds)
}

// Clear forgets all folds without touching the store.
func (r *FoldRegistry) Clear() {
	r.folds = nil
}

// save rewrites the whole blob. Folds that no longer encode, for instance
// after the source shrank under them, are dropped from the registry too.
func (r *FoldRegistry) save(ctx context.Context) error {
	keys := make([]m.StableKey, 0, len(r.folds))
	kept := r.folds[:0]

	for _, loc := range r.folds {
		key, err := r.codec.Encode(loc)
		if err != nil {
			slog.Warn("dropping fold", "image", r.image.Name, "location", loc.String(), "error", err)
			continue
		}

		kept = append(kept, loc)
		keys = append(keys, key)
	}

	r.folds = kept

	ns := Namespace(r.image)

	if err := r.store.Put(ctx, ns, TagFolds, KeysToBlob(keys)); err != nil {
		return fmt.Errorf("failed to save folds of %s: %w", r.image.Name, err)
	}

	if err := r.store.Put(ctx, ns, TagHash, []byte(r.image.Hash)); err != nil {
		return fmt.Errorf("failed to save source hash of %s: %w", r.image.Name, err)
	}

	return nil
}
