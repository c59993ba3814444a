package domain

import (
	"go/ast"
	"go/token"

	m "gofold.dev/pkg/gofold/internal/model"
)

// Collapse replaces the statements of block with a single placeholder.
// Collapsing a collapsed block changes nothing.
func Collapse(block *ast.BlockStmt) {
	if IsCollapsed(block) {
		return
	}

	block.List = []ast.Stmt{NewPlaceholder(block.Lbrace)}
}

// NewPlaceholder creates the statement standing in for a collapsed block
// opened at pos.
func NewPlaceholder(pos token.Pos) *ast.ExprStmt {
	return &ast.ExprStmt{X: &ast.Ident{NamePos: pos, Name: m.PlaceholderText}}
}

// IsPlaceholder reports whether stmt is a fold placeholder.
func IsPlaceholder(stmt ast.Stmt) bool {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return false
	}

	ident, ok := es.X.(*ast.Ident)

	return ok && ident.Name == m.PlaceholderText
}

// IsCollapsed reports whether block holds exactly its placeholder.
func IsCollapsed(block *ast.BlockStmt) bool {
	return len(block.List) == 1 && IsPlaceholder(block.List[0])
}
