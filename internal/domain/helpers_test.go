package domain_test

import (
	"context"
	"go/ast"
	"testing"

	"github.com/stretchr/testify/require"

	"gofold.dev/pkg/gofold/internal/adapter"
	"gofold.dev/pkg/gofold/internal/domain"
	m "gofold.dev/pkg/gofold/internal/model"
)

const branchSource = `package main

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
`

const elseSource = `package main

func sign(x int) string {
	if x < 0 {
		return "neg"
	} else {
		return "pos"
	}
}
`

type opened struct {
	image    *m.Image
	pipeline *adapter.GoPipeline
	session  *domain.Session
	view     *adapter.SourceView
}

// openAt opens src as main.go at base with the folds saved in store.
func openAt(t *testing.T, store adapter.Store, src string, base int) opened {
	t.Helper()

	img := &m.Image{Name: "main.go", Path: "/work/main.go", Base: base, Source: []byte(src), Hash: "h"}
	pipeline := adapter.NewGoPipeline(adapter.NewLocalGoFileAdapter())
	session := domain.OpenSession(context.Background(), img, pipeline, store)
	t.Cleanup(session.Close)

	view := adapter.NewSourceView(img, pipeline, adapter.NewTextRenderer())
	require.NoError(t, view.Refresh(context.Background(), m.RefreshFull))

	return opened{image: img, pipeline: pipeline, session: session, view: view}
}

func funcBody(tree *m.Tree) *ast.BlockStmt {
	for _, decl := range tree.File.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			return fn.Body
		}
	}

	return nil
}

func ifStmt(tree *m.Tree) *ast.IfStmt {
	return funcBody(tree).List[0].(*ast.IfStmt)
}

func foldedLines(lines []m.Line) []m.Line {
	var folded []m.Line

	for _, l := range lines {
		if l.Folded {
			folded = append(folded, l)
		}
	}

	return folded
}
