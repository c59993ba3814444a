package domain

import (
	"context"
	"errors"
	"log/slog"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

// CommandLayer implements the fold and unfold actions of one image.
type CommandLayer struct {
	registry *FoldRegistry
}

// NewCommandLayer creates the actions working on registry.
func NewCommandLayer(registry *FoldRegistry) *CommandLayer {
	return &CommandLayer{registry: registry}
}

// Actions returns the registered action names.
func (c *CommandLayer) Actions() []m.ActionName {
	return []m.ActionName{m.ActionFold, m.ActionUnfold}
}

// Update reports whether the actions may run for view.
func (c *CommandLayer) Update(view adapter.View) m.ActionState {
	if view == nil {
		return m.ActionDisabledForWidget
	}

	return m.ActionEnabled
}

// Fold collapses the block under the cursor of view. It reports false when
// no block is anchored at the cursor or the block cannot be registered;
// nothing changes in either case.
func (c *CommandLayer) Fold(ctx context.Context, view adapter.View) (bool, error) {
	if view == nil {
		return false, nil
	}

	cursor := view.CursorLocation()

	block, ok := FindEnclosingBlock(view.Tree(), cursor)
	if !ok {
		slog.Debug("nothing to fold", "cursor", cursor.String())
		return false, nil
	}

	loc := m.LocationOf(block.Lbrace)

	addErr := c.registry.Add(ctx, loc)
	if addErr != nil {
		slog.Error("failed to persist fold", "location", loc.String(), "error", addErr)
	}

	// A fold that was never registered would vanish on the next rebuild.
	if !c.registry.Contains(loc) {
		return false, addErr
	}

	Collapse(block)

	return true, errors.Join(addErr, view.Refresh(ctx, m.RefreshLight))
}

// Unfold restores the block under the cursor of view by rebuilding the tree
// without its fold. It reports false when no block is anchored at the cursor.
func (c *CommandLayer) Unfold(ctx context.Context, view adapter.View) (bool, error) {
	if view == nil {
		return false, nil
	}

	cursor := view.CursorLocation()

	block, ok := FindEnclosingBlock(view.Tree(), cursor)
	if !ok {
		slog.Debug("nothing to unfold", "cursor", cursor.String())
		return false, nil
	}

	loc := m.LocationOf(block.Lbrace)

	removeErr := c.registry.Remove(ctx, loc)
	if removeErr != nil {
		slog.Error("failed to persist unfold", "location", loc.String(), "error", removeErr)
	}

	return true, errors.Join(removeErr, view.Refresh(ctx, m.RefreshFull))
}

// Run dispatches action to Fold or Unfold.
func (c *CommandLayer) Run(ctx context.Context, action m.ActionName, view adapter.View) (bool, error) {
	switch action {
	case m.ActionFold:
		return c.Fold(ctx, view)
	case m.ActionUnfold:
		return c.Unfold(ctx, view)
	default:
		return false, errors.New("unknown action " + string(action))
	}
}

// PopulatePopup offers Unfold on a folded block and Fold on any other block.
func (c *CommandLayer) PopulatePopup(view adapter.View, popup *m.Popup) {
	if view == nil {
		return
	}

	tree, cursor := view.Tree(), view.CursorLocation()

	if IsAlreadyFolded(tree, cursor, c.registry) {
		popup.Attach(m.ActionUnfold)
		return
	}

	if _, ok := FindEnclosingBlock(tree, cursor); ok {
		popup.Attach(m.ActionFold)
	}
}
