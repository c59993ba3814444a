package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pmezard/go-difflib/difflib"

	"gofold.dev/pkg/gofold/internal/adapter"
	"gofold.dev/pkg/gofold/internal/controller"
	m "gofold.dev/pkg/gofold/internal/model"
)

// ErrNoSuchImage is returned when a target file is not among the loaded images.
var ErrNoSuchImage = errors.New("file not loaded")

// ShowArgs contains the arguments for rendering files with their folds.
type ShowArgs struct {
	Paths []m.Path
}

// FoldArgs contains the arguments for folding or unfolding a block.
type FoldArgs struct {
	// Paths are loaded in order before the target, shifting its base.
	Paths  []m.Path
	Target m.Path
	Line   int
}

// ListArgs contains the arguments for listing saved folds.
type ListArgs struct {
	Paths  []m.Path
	Format controller.Format
}

// DiffArgs contains the arguments for comparing plain and folded renderings.
type DiffArgs struct {
	Paths   []m.Path
	Context int
}

// ViewArgs contains the arguments for browsing a file interactively.
type ViewArgs struct {
	Path  m.Path
	Watch bool
}

// Workflow defines the operations offered on the command line.
type Workflow interface {
	Show(ctx context.Context, args ShowArgs) error
	Fold(ctx context.Context, args FoldArgs) error
	Unfold(ctx context.Context, args FoldArgs) error
	List(ctx context.Context, args ListArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ImageLoader
	adapter.Pipeline
	adapter.Renderer
	adapter.Store
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	loader adapter.ImageLoader,
	pipeline adapter.Pipeline,
	renderer adapter.Renderer,
	store adapter.Store,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ImageLoader:     loader,
		Pipeline:        pipeline,
		Renderer:        renderer,
		Store:           store,
		UI:              ui,
	}
}

// openImage is a loaded image with its session and view.
type openImage struct {
	session *Session
	view    *adapter.SourceView
}

func (w *workflow) open(ctx context.Context, paths []m.Path) ([]openImage, func(), error) {
	images, err := w.Load(ctx, paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("load images: %w", err)
	}

	var opened []openImage

	closeAll := func() {
		for _, o := range opened {
			o.session.Close()
		}
	}

	seen := make(map[string]bool, len(images))

	for _, img := range images {
		if seen[img.Name] {
			closeAll()
			return nil, nil, fmt.Errorf("%s given twice", img.Name)
		}

		seen[img.Name] = true

		session := OpenSession(ctx, img, w.Pipeline, w.Store)
		opened = append(opened, openImage{session: session, view: adapter.NewSourceView(img, w.Pipeline, w.Renderer)})

		if err := opened[len(opened)-1].view.Refresh(ctx, m.RefreshFull); err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	return opened, closeAll, nil
}

func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	opened, closeAll, err := w.open(ctx, args.Paths)
	if err != nil {
		return err
	}
	defer closeAll()

	for _, o := range opened {
		if err := w.DisplaySource(ctx, o.session.Image(), o.view.Lines()); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) Fold(ctx context.Context, args FoldArgs) error {
	return w.runAtLine(ctx, m.ActionFold, args)
}

func (w *workflow) Unfold(ctx context.Context, args FoldArgs) error {
	return w.runAtLine(ctx, m.ActionUnfold, args)
}

func (w *workflow) runAtLine(ctx context.Context, action m.ActionName, args FoldArgs) error {
	target, err := w.AbsPath(ctx, args.Target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args.Target, err)
	}

	paths := slices.Clone(args.Paths)
	if !slices.Contains(paths, args.Target) && !slices.Contains(paths, target) {
		paths = append(paths, target)
	}

	opened, closeAll, err := w.open(ctx, paths)
	if err != nil {
		return err
	}
	defer closeAll()

	idx := slices.IndexFunc(opened, func(o openImage) bool { return o.session.Image().Path == target })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchImage, args.Target)
	}

	o := opened[idx]

	applied := false
	if o.view.SeekSourceLine(args.Line) {
		applied, err = o.session.Commands().Run(ctx, action, o.view)
		if err != nil {
			return fmt.Errorf("%s at %s:%d: %w", action.Label(), o.session.Image().Name, args.Line, err)
		}
	}

	slog.Info("action finished", "action", string(action), "image", o.session.Image().Name, "line", args.Line, "applied", applied)

	w.DisplayActionResult(ctx, action, o.session.Image(), args.Line, applied)

	return w.DisplaySource(ctx, o.session.Image(), o.view.Lines())
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	opened, closeAll, err := w.open(ctx, args.Paths)
	if err != nil {
		return err
	}
	defer closeAll()

	var folds []m.Fold

	for _, o := range opened {
		folds = append(folds, describeFolds(o.session, o.view.Tree())...)
	}

	return w.DisplayFolds(ctx, folds, args.Format)
}

func describeFolds(session *Session, tree *m.Tree) []m.Fold {
	locations := session.Registry().All()
	folds := make([]m.Fold, 0, len(locations))

	for _, loc := range locations {
		key, err := session.Codec().Encode(loc)
		if err != nil {
			slog.Warn("skipping fold", "image", session.Image().Name, "location", loc.String(), "error", err)
			continue
		}

		pos := tree.Position(loc)
		_, resolved := FindEnclosingBlock(tree, loc)

		folds = append(folds, m.Fold{
			Image:    session.Image().Name,
			Location: loc,
			Key:      key,
			Line:     pos.Line,
			Column:   pos.Column,
			Resolved: resolved,
		})
	}

	return folds
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	opened, closeAll, err := w.open(ctx, args.Paths)
	if err != nil {
		return err
	}
	defer closeAll()

	for _, o := range opened {
		folded := adapter.FormatLines(o.view.Lines())

		// Without the session the pipeline builds the tree as parsed.
		o.session.Close()

		tree, err := w.Build(ctx, o.session.Image())
		if err != nil {
			return err
		}

		lines, err := w.Render(tree)
		if err != nil {
			return err
		}

		name := o.session.Image().Name

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(adapter.FormatLines(lines)),
			B:        difflib.SplitLines(folded),
			FromFile: name,
			ToFile:   name + " (folded)",
			Context:  max(args.Context, 0),
		})
		if err != nil {
			return fmt.Errorf("diff %s: %w", name, err)
		}

		if err := w.DisplayDiff(ctx, name, diff); err != nil {
			return err
		}
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	opened, closeAll, err := w.open(ctx, []m.Path{args.Path})
	if err != nil {
		return err
	}
	defer closeAll()

	b := &browser{session: opened[0].session, view: opened[0].view, fs: w.SourceFSAdapter}

	if args.Watch {
		watcher, err := adapter.NewSourceWatcher(adapter.DefaultWatchDebounce, b.session.Image().Path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", args.Path, err)
		}

		watcher.Start(ctx)
		defer watcher.Stop()

		b.changes = watcher.Changes()
	}

	return w.Browse(ctx, b)
}
