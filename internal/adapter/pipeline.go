package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"log/slog"

	m "gofold.dev/pkg/gofold/internal/model"
)

// View is the part of an interactive view the core works with.
type View interface {
	// CursorLocation returns the anchor of the item under the cursor.
	CursorLocation() m.Location
	// Tree returns the tree currently displayed.
	Tree() *m.Tree
	// Refresh re-renders the view, rebuilding the tree first for m.RefreshFull.
	Refresh(ctx context.Context, mode m.RefreshMode) error
}

// PipelineListener receives pipeline events. Listeners run synchronously on
// the goroutine that drives the pipeline.
type PipelineListener interface {
	// OnMaturity is called after the tree reached stage. A returned error
	// aborts the build.
	OnMaturity(ctx context.Context, tree *m.Tree, stage m.Maturity) error
	// OnPopulatingPopup is called before a context popup is shown for view.
	OnPopulatingPopup(view View, popup *m.Popup)
}

// Pipeline builds trees for images in maturity stages.
type Pipeline interface {
	// Subscribe registers l and returns a function removing it again.
	Subscribe(l PipelineListener) func()
	// Build produces a fresh tree for img, notifying listeners at every stage.
	Build(ctx context.Context, img *m.Image) (*m.Tree, error)
	// Verify checks the tree invariants. allowUnusedLabels relaxes the label
	// check for this and every later verification of the tree.
	Verify(tree *m.Tree, allowUnusedLabels bool) error
	// PopulatePopup lets listeners fill popup for view.
	PopulatePopup(view View, popup *m.Popup)
}

type subscription struct {
	id       int
	listener PipelineListener
}

// GoPipeline is the Pipeline for Go source images.
type GoPipeline struct {
	parser    GoFileAdapter
	listeners []subscription
	nextID    int
}

// NewGoPipeline creates a GoPipeline parsing through parser.
func NewGoPipeline(parser GoFileAdapter) *GoPipeline {
	return &GoPipeline{parser: parser}
}

// Subscribe implements Pipeline.
func (p *GoPipeline) Subscribe(l PipelineListener) func() {
	p.nextID++
	id := p.nextID
	p.listeners = append(p.listeners, subscription{id: id, listener: l})

	return func() {
		for i, s := range p.listeners {
			if s.id == id {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// Build implements Pipeline.
func (p *GoPipeline) Build(ctx context.Context, img *m.Image) (*m.Tree, error) {
	fset, file, err := p.parser.Parse(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", img.Name, err)
	}

	tree := &m.Tree{Image: img, Fset: fset, File: file}

	if err := p.advance(ctx, tree, m.MaturityBuilt); err != nil {
		return nil, err
	}

	if err := p.Verify(tree, false); err != nil {
		return nil, fmt.Errorf("%s rejected at %s: %w", img.Name, m.MaturityTrans1, err)
	}

	if err := p.advance(ctx, tree, m.MaturityTrans1); err != nil {
		return nil, err
	}

	dropEmptyStatements(file)

	if err := p.advance(ctx, tree, m.MaturityNice); err != nil {
		return nil, err
	}

	if err := p.Verify(tree, tree.AllowUnusedLabels); err != nil {
		return nil, fmt.Errorf("%s rejected at %s: %w", img.Name, m.MaturityFinal, err)
	}

	if err := p.advance(ctx, tree, m.MaturityFinal); err != nil {
		return nil, err
	}

	slog.Debug("built tree", "image", img.Name, "base", img.Base, "allowUnusedLabels", tree.AllowUnusedLabels)

	return tree, nil
}

func (p *GoPipeline) advance(ctx context.Context, tree *m.Tree, stage m.Maturity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tree.Maturity = stage

	// Listeners may unsubscribe while being notified.
	listeners := append([]subscription(nil), p.listeners...)
	for _, s := range listeners {
		if err := s.listener.OnMaturity(ctx, tree, stage); err != nil {
			return fmt.Errorf("listener failed at %s: %w", stage, err)
		}
	}

	return nil
}

// Verify implements Pipeline.
func (p *GoPipeline) Verify(tree *m.Tree, allowUnusedLabels bool) error {
	if allowUnusedLabels {
		tree.AllowUnusedLabels = true
	}

	return verifyTree(tree, tree.AllowUnusedLabels)
}

// PopulatePopup implements Pipeline.
func (p *GoPipeline) PopulatePopup(view View, popup *m.Popup) {
	listeners := append([]subscription(nil), p.listeners...)
	for _, s := range listeners {
		s.listener.OnPopulatingPopup(view, popup)
	}
}

// dropEmptyStatements removes stray semicolons from statement lists.
func dropEmptyStatements(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.BlockStmt:
			x.List = withoutEmpty(x.List)
		case *ast.CaseClause:
			x.Body = withoutEmpty(x.Body)
		case *ast.CommClause:
			x.Body = withoutEmpty(x.Body)
		}

		return true
	})
}

func withoutEmpty(list []ast.Stmt) []ast.Stmt {
	kept := list[:0]

	for _, stmt := range list {
		if _, ok := stmt.(*ast.EmptyStmt); ok {
			continue
		}

		kept = append(kept, stmt)
	}

	return kept
}
