package adapter

import (
	"bytes"
	"errors"
	"go/ast"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	m "gofold.dev/pkg/gofold/internal/model"
)

// Renderer turns a tree into display lines.
type Renderer interface {
	Render(tree *m.Tree) ([]m.Line, error)
}

// TextRenderer renders Go trees statement by statement so that every line
// carries the location of the item it shows. Block lines (the opening line,
// the closing brace and `} else {`) are anchored at the block they open.
type TextRenderer struct {
	config printer.Config
}

// NewTextRenderer creates a TextRenderer using gofmt-like printing.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{config: printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}}
}

// Render implements Renderer.
func (r *TextRenderer) Render(tree *m.Tree) ([]m.Line, error) {
	if tree == nil || tree.File == nil {
		return nil, errors.New("no tree to render")
	}

	c := &ctext{config: &r.config, fset: tree.Fset}
	c.file(tree.File)

	if c.err != nil {
		return nil, c.err
	}

	return c.lines, nil
}

// FormatLines joins rendered lines into tab indented text.
func FormatLines(lines []m.Line) string {
	var b strings.Builder

	for _, line := range lines {
		if line.Text != "" {
			b.WriteString(strings.Repeat("\t", line.Indent))
			b.WriteString(line.Text)
		}

		b.WriteByte('\n')
	}

	return b.String()
}

type ctext struct {
	config *printer.Config
	fset   *token.FileSet
	lines  []m.Line
	err    error
}

func (c *ctext) emit(indent int, anchor token.Pos, text string) {
	c.lines = append(c.lines, m.Line{Text: text, Indent: indent, Anchor: m.LocationOf(anchor)})
}

func (c *ctext) blank() {
	c.lines = append(c.lines, m.Line{})
}

func (c *ctext) print(n ast.Node) string {
	var buf bytes.Buffer
	if err := c.config.Fprint(&buf, c.fset, n); err != nil && c.err == nil {
		c.err = err
	}

	return buf.String()
}

// funcLitMarker stands in for a function literal body while the enclosing
// node is printed. It is longer than a printed line, so the printer never
// keeps a literal on a single line.
var funcLitMarker = "gofoldFuncLitBody" + strings.Repeat("_", 100)

// emitNode prints n and emits every resulting line at anchor. Continuation
// lines keep the indentation printed for them.
func (c *ctext) emitNode(indent int, anchor token.Pos, n ast.Node) {
	for _, text := range strings.Split(c.print(n), "\n") {
		c.emit(indent, anchor, text)
	}
}

// node is emitNode for nodes that may hold function literals. Literal bodies
// are rendered statement by statement and the lines opening and closing them
// are anchored at the body.
func (c *ctext) node(indent int, anchor token.Pos, n ast.Node) {
	lits := funcLits(n)
	if len(lits) == 0 {
		c.emitNode(indent, anchor, n)
		return
	}

	bodies := make([]*ast.BlockStmt, len(lits))
	markers := make(map[string]*ast.BlockStmt, len(lits))

	for i, lit := range lits {
		name := funcLitMarker + strconv.Itoa(i)
		bodies[i], markers[name] = lit.Body, lit.Body
		lit.Body = &ast.BlockStmt{
			Lbrace: lit.Body.Lbrace,
			List:   []ast.Stmt{&ast.ExprStmt{X: ast.NewIdent(name)}},
			Rbrace: lit.Body.Rbrace,
		}
	}

	text := c.print(n)

	for i, lit := range lits {
		lit.Body = bodies[i]
	}

	lines := strings.Split(text, "\n")

	var closing *ast.BlockStmt

	for i, line := range lines {
		if body, ok := markers[strings.TrimSpace(line)]; ok {
			c.stmts(indent+leadingTabs(line), body.List)
			closing = body

			continue
		}

		// The printer may keep a blank line for the lines the body took.
		if closing != nil && strings.TrimSpace(line) == "" {
			continue
		}

		at := anchor
		if closing != nil {
			at, closing = closing.Lbrace, nil
		}

		// A line such as "}, func() {" belongs to the block it opens.
		if i+1 < len(lines) {
			if body, ok := markers[strings.TrimSpace(lines[i+1])]; ok {
				at = body.Lbrace
			}
		}

		c.emit(indent, at, line)
	}
}

// funcLits returns the outermost function literals with a body under n.
func funcLits(n ast.Node) []*ast.FuncLit {
	var lits []*ast.FuncLit

	ast.Inspect(n, func(x ast.Node) bool {
		lit, ok := x.(*ast.FuncLit)
		if !ok {
			return true
		}

		if lit.Body != nil {
			lits = append(lits, lit)
		}

		return false
	})

	return lits
}

func leadingTabs(line string) int {
	return len(line) - len(strings.TrimLeft(line, "\t"))
}

func (c *ctext) file(f *ast.File) {
	c.emit(0, f.Package, "package "+f.Name.Name)

	for _, decl := range f.Decls {
		c.blank()

		switch d := decl.(type) {
		case *ast.FuncDecl:
			c.funcDecl(d)
		default:
			c.node(0, decl.Pos(), decl)
		}
	}
}

func (c *ctext) funcDecl(d *ast.FuncDecl) {
	header := c.print(&ast.FuncDecl{Recv: d.Recv, Name: d.Name, Type: d.Type})
	if d.Body == nil {
		c.emit(0, d.Pos(), header)
		return
	}

	c.open(0, header, d.Body)
	c.close(0, d.Body)
}

// open emits the opening line of b and its statements one level deeper.
func (c *ctext) open(indent int, header string, b *ast.BlockStmt) {
	c.openAt(indent, header, b, indent+1)
}

func (c *ctext) openAt(indent int, header string, b *ast.BlockStmt, bodyIndent int) {
	text := "{"
	if header != "" {
		text = header + " {"
	}

	if len(b.List) == 1 && isPlaceholderStmt(b.List[0]) {
		bodyIndent = indent + 1
	}

	c.emit(indent, b.Lbrace, text)
	c.stmts(bodyIndent, b.List)
}

func (c *ctext) close(indent int, b *ast.BlockStmt) {
	c.emit(indent, b.Lbrace, "}")
}

func (c *ctext) stmts(indent int, list []ast.Stmt) {
	for _, s := range list {
		c.stmt(indent, s)
	}
}

//nolint:cyclop // One case per statement kind.
func (c *ctext) stmt(indent int, s ast.Stmt) {
	switch x := s.(type) {
	case *ast.BlockStmt:
		c.open(indent, "", x)
		c.close(indent, x)
	case *ast.IfStmt:
		c.ifStmt(indent, x, "")
	case *ast.ForStmt:
		c.open(indent, c.forHeader(x), x.Body)
		c.close(indent, x.Body)
	case *ast.RangeStmt:
		c.open(indent, c.rangeHeader(x), x.Body)
		c.close(indent, x.Body)
	case *ast.SwitchStmt:
		c.openAt(indent, c.switchHeader("switch", x.Init, x.Tag), x.Body, indent)
		c.close(indent, x.Body)
	case *ast.TypeSwitchStmt:
		c.openAt(indent, c.switchHeader("switch", x.Init, x.Assign), x.Body, indent)
		c.close(indent, x.Body)
	case *ast.SelectStmt:
		c.openAt(indent, "select", x.Body, indent)
		c.close(indent, x.Body)
	case *ast.CaseClause:
		c.emit(indent, x.Case, c.caseHeader(x))
		c.stmts(indent+1, x.Body)
	case *ast.CommClause:
		header := "default:"
		if x.Comm != nil {
			header = "case " + c.print(x.Comm) + ":"
		}

		c.emit(indent, x.Case, header)
		c.stmts(indent+1, x.Body)
	case *ast.LabeledStmt:
		c.emit(max(indent-1, 0), x.Pos(), x.Label.Name+":")

		if _, empty := x.Stmt.(*ast.EmptyStmt); !empty {
			c.stmt(indent, x.Stmt)
		}
	case *ast.EmptyStmt:
	case *ast.ExprStmt:
		if isPlaceholderStmt(x) {
			c.lines = append(c.lines, m.Line{
				Text:   m.PlaceholderText,
				Indent: indent,
				Anchor: m.LocationOf(x.Pos()),
				Folded: true,
			})

			return
		}

		c.node(indent, x.Pos(), x)
	default:
		c.node(indent, s.Pos(), s)
	}
}

func (c *ctext) ifStmt(indent int, s *ast.IfStmt, prefix string) {
	header := prefix + "if "
	if s.Init != nil {
		header += c.print(s.Init) + "; "
	}

	header += c.print(s.Cond)

	c.open(indent, header, s.Body)

	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		c.emit(indent, e.Lbrace, "} else {")
		c.stmts(indent+1, e.List)
		c.close(indent, e)
	case *ast.IfStmt:
		c.ifStmt(indent, e, "} else ")
	default:
		c.close(indent, s.Body)
	}
}

func (c *ctext) forHeader(s *ast.ForStmt) string {
	if s.Init == nil && s.Post == nil {
		if s.Cond == nil {
			return "for"
		}

		return "for " + c.print(s.Cond)
	}

	var parts [3]string
	if s.Init != nil {
		parts[0] = c.print(s.Init)
	}

	if s.Cond != nil {
		parts[1] = " " + c.print(s.Cond)
	}

	if s.Post != nil {
		parts[2] = " " + c.print(s.Post)
	}

	return "for " + parts[0] + ";" + parts[1] + ";" + parts[2]
}

func (c *ctext) rangeHeader(s *ast.RangeStmt) string {
	if s.Key == nil {
		return "for range " + c.print(s.X)
	}

	vars := c.print(s.Key)
	if s.Value != nil {
		vars += ", " + c.print(s.Value)
	}

	return "for " + vars + " " + s.Tok.String() + " range " + c.print(s.X)
}

func (c *ctext) switchHeader(keyword string, init ast.Stmt, tag ast.Node) string {
	header := keyword
	if init != nil {
		header += " " + c.print(init) + ";"
	}

	if tag != nil {
		header += " " + c.print(tag)
	}

	return header
}

func (c *ctext) caseHeader(cc *ast.CaseClause) string {
	if cc.List == nil {
		return "default:"
	}

	exprs := make([]string, 0, len(cc.List))
	for _, e := range cc.List {
		exprs = append(exprs, c.print(e))
	}

	return "case " + strings.Join(exprs, ", ") + ":"
}
