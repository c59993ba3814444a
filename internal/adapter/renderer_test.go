package adapter

import (
	"context"
	"go/ast"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gofold.dev/pkg/gofold/internal/model"
)

type renderedLine struct {
	Text   string
	Indent int
	Folded bool
}

func shape(lines []m.Line) []renderedLine {
	out := make([]renderedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, renderedLine{Text: l.Text, Indent: l.Indent, Folded: l.Folded})
	}

	return out
}

func parseTree(t *testing.T, src string, base int) *m.Tree {
	t.Helper()

	img := &m.Image{Name: "main.go", Path: "main.go", Base: base, Source: []byte(src)}

	fset, file, err := NewLocalGoFileAdapter().Parse(context.Background(), img)
	require.NoError(t, err)

	return &m.Tree{Image: img, Fset: fset, File: file, Maturity: m.MaturityFinal}
}

// foldForTest replaces the contents of b with a placeholder.
func foldForTest(b *ast.BlockStmt) {
	b.List = []ast.Stmt{&ast.ExprStmt{X: &ast.Ident{NamePos: b.Lbrace, Name: m.PlaceholderText}}}
}

func firstFunc(file *ast.File) *ast.FuncDecl {
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			return fn
		}
	}

	return nil
}

func TestTextRenderer_Render(t *testing.T) {
	tree := parseTree(t, branchSource, 1)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	want := []renderedLine{
		{Text: "package main"},
		{},
		{Text: "func max(a, b int) int {"},
		{Text: "if a > b {", Indent: 1},
		{Text: "return a", Indent: 2},
		{Text: "}", Indent: 1},
		{Text: "return b", Indent: 1},
		{Text: "}"},
	}
	if diff := cmp.Diff(want, shape(lines)); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}

	fn := firstFunc(tree.File)
	ifBody := fn.Body.List[0].(*ast.IfStmt).Body

	assert.Equal(t, m.LocationOf(fn.Body.Lbrace), lines[2].Anchor)
	assert.Equal(t, m.LocationOf(ifBody.Lbrace), lines[3].Anchor)
	assert.Equal(t, m.LocationOf(ifBody.Lbrace), lines[5].Anchor)
	assert.Equal(t, m.LocationOf(fn.Body.Lbrace), lines[7].Anchor)
	assert.False(t, lines[1].Anchor.IsValid())
}

func TestTextRenderer_Render_Folded(t *testing.T) {
	tree := parseTree(t, branchSource, 1)

	ifBody := firstFunc(tree.File).Body.List[0].(*ast.IfStmt).Body
	foldForTest(ifBody)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	want := []renderedLine{
		{Text: "package main"},
		{},
		{Text: "func max(a, b int) int {"},
		{Text: "if a > b {", Indent: 1},
		{Text: m.PlaceholderText, Indent: 2, Folded: true},
		{Text: "}", Indent: 1},
		{Text: "return b", Indent: 1},
		{Text: "}"},
	}
	if diff := cmp.Diff(want, shape(lines)); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, m.LocationOf(ifBody.Lbrace), lines[4].Anchor)
}

func TestTextRenderer_Render_ControlFlow(t *testing.T) {
	src := `package main

func classify(xs []int) string {
	for i := 0; i < 2; i++ {
		_ = i
	}
	for _, x := range xs {
		switch {
		case x > 0:
			return "pos"
		default:
		}
	}
	if len(xs) == 0 {
		return "empty"
	} else if len(xs) == 1 {
		return "one"
	} else {
		return "many"
	}
}
`
	tree := parseTree(t, src, 1)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	want := []renderedLine{
		{Text: "package main"},
		{},
		{Text: "func classify(xs []int) string {"},
		{Text: "for i := 0; i < 2; i++ {", Indent: 1},
		{Text: "_ = i", Indent: 2},
		{Text: "}", Indent: 1},
		{Text: "for _, x := range xs {", Indent: 1},
		{Text: "switch {", Indent: 2},
		{Text: "case x > 0:", Indent: 2},
		{Text: `return "pos"`, Indent: 3},
		{Text: "default:", Indent: 2},
		{Text: "}", Indent: 2},
		{Text: "}", Indent: 1},
		{Text: "if len(xs) == 0 {", Indent: 1},
		{Text: `return "empty"`, Indent: 2},
		{Text: "} else if len(xs) == 1 {", Indent: 1},
		{Text: `return "one"`, Indent: 2},
		{Text: "} else {", Indent: 1},
		{Text: `return "many"`, Indent: 2},
		{Text: "}", Indent: 1},
		{Text: "}"},
	}
	if diff := cmp.Diff(want, shape(lines)); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}
}

const funcLitSource = `package main

var double = func(n int) int {
	return n * 2
}

func run(ch chan int) {
	go func() {
		ch <- 1
		ch <- 2
	}()
	defer func() {
		close(ch)
	}()
	both(func() {
		println(1)
	}, func() {
		println(2)
	})
}
`

// funcLitBodies returns the bodies of the function literals of file in
// source order.
func funcLitBodies(file *ast.File) []*ast.BlockStmt {
	var bodies []*ast.BlockStmt

	ast.Inspect(file, func(n ast.Node) bool {
		if lit, ok := n.(*ast.FuncLit); ok {
			bodies = append(bodies, lit.Body)
		}

		return true
	})

	return bodies
}

func TestTextRenderer_Render_FuncLits(t *testing.T) {
	tree := parseTree(t, funcLitSource, 1)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	want := []renderedLine{
		{Text: "package main"},
		{},
		{Text: "var double = func(n int) int {"},
		{Text: "return n * 2", Indent: 1},
		{Text: "}"},
		{},
		{Text: "func run(ch chan int) {"},
		{Text: "go func() {", Indent: 1},
		{Text: "ch <- 1", Indent: 2},
		{Text: "ch <- 2", Indent: 2},
		{Text: "}()", Indent: 1},
		{Text: "defer func() {", Indent: 1},
		{Text: "close(ch)", Indent: 2},
		{Text: "}()", Indent: 1},
		{Text: "both(func() {", Indent: 1},
		{Text: "println(1)", Indent: 2},
		{Text: "}, func() {", Indent: 1},
		{Text: "println(2)", Indent: 2},
		{Text: "})", Indent: 1},
		{Text: "}"},
	}
	if diff := cmp.Diff(want, shape(lines)); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}

	bodies := funcLitBodies(tree.File)
	require.Len(t, bodies, 5)

	// Lines opening and closing a literal body, by rendered line index.
	anchors := map[int]*ast.BlockStmt{
		2: bodies[0], 4: bodies[0],
		7: bodies[1], 10: bodies[1],
		11: bodies[2], 13: bodies[2],
		14: bodies[3],
		16: bodies[4], 18: bodies[4],
	}
	for i, body := range anchors {
		assert.Equal(t, m.LocationOf(body.Lbrace), lines[i].Anchor, "line %d", i)
	}

	assert.Equal(t, funcLitSource, FormatLines(lines))
}

func TestTextRenderer_Render_FoldedFuncLit(t *testing.T) {
	tree := parseTree(t, funcLitSource, 1)

	body := funcLitBodies(tree.File)[1]
	foldForTest(body)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	want := []renderedLine{
		{Text: "go func() {", Indent: 1},
		{Text: m.PlaceholderText, Indent: 2, Folded: true},
		{Text: "}()", Indent: 1},
		{Text: "defer func() {", Indent: 1},
	}
	if diff := cmp.Diff(want, shape(lines[7:11])); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, m.LocationOf(body.Lbrace), lines[8].Anchor)
}

func TestTextRenderer_Render_NoTree(t *testing.T) {
	_, err := NewTextRenderer().Render(nil)
	require.Error(t, err)
}

func TestFormatLines(t *testing.T) {
	tree := parseTree(t, branchSource, 1)

	lines, err := NewTextRenderer().Render(tree)
	require.NoError(t, err)

	assert.Equal(t, branchSource, FormatLines(lines))
}
