package domain_test

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofold.dev/pkg/gofold/internal/domain"
	m "gofold.dev/pkg/gofold/internal/model"
)

func TestCollapse(t *testing.T) {
	tree := parseTree(t, branchSource, 0x1000)
	body := ifStmt(tree).Body

	domain.Collapse(body)

	require.Len(t, body.List, 1)
	assert.True(t, domain.IsPlaceholder(body.List[0]))
	assert.True(t, domain.IsCollapsed(body))
	assert.Equal(t, body.Lbrace, body.List[0].Pos())
}

func TestCollapse_Idempotent(t *testing.T) {
	tree := parseTree(t, branchSource, 0x1000)
	body := ifStmt(tree).Body

	domain.Collapse(body)
	placeholder := body.List[0]

	domain.Collapse(body)

	require.Len(t, body.List, 1)
	assert.Same(t, placeholder, body.List[0])
}

func TestCollapse_EmptyBlock(t *testing.T) {
	body := &ast.BlockStmt{Lbrace: 10, Rbrace: 11}

	domain.Collapse(body)

	assert.True(t, domain.IsCollapsed(body))
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, domain.IsPlaceholder(domain.NewPlaceholder(7)))
	assert.False(t, domain.IsPlaceholder(&ast.ExprStmt{X: &ast.Ident{Name: "x"}}))
	assert.False(t, domain.IsPlaceholder(&ast.ReturnStmt{}))
	assert.Equal(t, m.PlaceholderText, domain.NewPlaceholder(7).X.(*ast.Ident).Name)
}

func TestIsCollapsed(t *testing.T) {
	tree := parseTree(t, branchSource, 1)
	body := funcBody(tree)

	assert.False(t, domain.IsCollapsed(body))

	body.List = append(body.List, domain.NewPlaceholder(body.Lbrace))
	assert.False(t, domain.IsCollapsed(body))
}
