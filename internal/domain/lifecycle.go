package domain

import (
	"context"
	"fmt"
	"go/ast"
	"log/slog"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

// LifecycleController re-applies registered folds whenever the pipeline
// rebuilds the tree of its image.
type LifecycleController struct {
	image    *m.Image
	registry *FoldRegistry
	pipeline adapter.Pipeline
	commands *CommandLayer
}

// NewLifecycleController creates a controller for img. It does nothing until
// subscribed to pipeline.
func NewLifecycleController(img *m.Image, registry *FoldRegistry, pipeline adapter.Pipeline, commands *CommandLayer) *LifecycleController {
	return &LifecycleController{image: img, registry: registry, pipeline: pipeline, commands: commands}
}

// OnMaturity implements adapter.PipelineListener.
func (c *LifecycleController) OnMaturity(_ context.Context, tree *m.Tree, stage m.Maturity) error {
	if stage != m.MaturityNice || tree == nil || tree.Image == nil || tree.Image.Name != c.image.Name {
		return nil
	}

	if c.registry.Len() == 0 {
		return nil
	}

	collapsed := 0

	WalkBlocks(tree.File, func(block *ast.BlockStmt, _ []ast.Node) bool {
		if c.registry.Contains(m.LocationOf(block.Lbrace)) {
			Collapse(block)
			collapsed++
		}

		return true
	})

	slog.Debug("re-applied folds", "image", c.image.Name, "registered", c.registry.Len(), "collapsed", collapsed)

	// Collapsing may remove the last branch to a label.
	if err := c.pipeline.Verify(tree, true); err != nil {
		return fmt.Errorf("folded tree of %s failed verification: %w", c.image.Name, err)
	}

	return nil
}

// OnPopulatingPopup implements adapter.PipelineListener.
func (c *LifecycleController) OnPopulatingPopup(view adapter.View, popup *m.Popup) {
	if view == nil {
		return
	}

	if tree := view.Tree(); tree == nil || tree.Image == nil || tree.Image.Name != c.image.Name {
		return
	}

	c.commands.PopulatePopup(view, popup)
}
