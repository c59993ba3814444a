package domain

import (
	"go/ast"

	m "gofold.dev/pkg/gofold/internal/model"
)

// BlockVisitor is called for every block statement with its ancestors,
// outermost first. The parents slice is reused by the walk. Returning false
// stops the walk.
type BlockVisitor func(block *ast.BlockStmt, parents []ast.Node) bool

// WalkBlocks visits the block statements under root in source order, parents
// before children.
func WalkBlocks(root ast.Node, fn BlockVisitor) {
	if root == nil {
		return
	}

	var (
		parents []ast.Node
		stopped bool
	)

	ast.Inspect(root, func(n ast.Node) bool {
		if stopped {
			return false
		}

		if n == nil {
			parents = parents[:len(parents)-1]
			return true
		}

		if block, ok := n.(*ast.BlockStmt); ok && !fn(block, parents) {
			stopped = true
			return false
		}

		parents = append(parents, n)

		return true
	})
}

// FindEnclosingBlock returns the block anchored at cursor.
func FindEnclosingBlock(tree *m.Tree, cursor m.Location) (*ast.BlockStmt, bool) {
	if tree == nil || tree.File == nil || !cursor.IsValid() {
		return nil, false
	}

	var found *ast.BlockStmt

	WalkBlocks(tree.File, func(block *ast.BlockStmt, _ []ast.Node) bool {
		if m.LocationOf(block.Lbrace) == cursor {
			found = block
			return false
		}

		return true
	})

	return found, found != nil
}

// IsAlreadyFolded reports whether the block anchored at cursor is registered.
func IsAlreadyFolded(tree *m.Tree, cursor m.Location, registry *FoldRegistry) bool {
	block, ok := FindEnclosingBlock(tree, cursor)

	return ok && registry.Contains(m.LocationOf(block.Lbrace))
}
