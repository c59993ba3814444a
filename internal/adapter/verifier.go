package adapter

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"sort"

	m "gofold.dev/pkg/gofold/internal/model"
)

var (
	// ErrUnusedLabel reports a label no branch statement refers to.
	ErrUnusedLabel = errors.New("label defined and not used")
	// ErrUndefinedLabel reports a branch to a label that does not exist.
	ErrUndefinedLabel = errors.New("label not defined")
	// ErrMalformedFold reports a placeholder sharing its block with other statements.
	ErrMalformedFold = errors.New("placeholder is not alone in its block")
)

func verifyTree(tree *m.Tree, allowUnusedLabels bool) error {
	if tree == nil || tree.File == nil {
		return errors.New("no tree to verify")
	}

	var errs []error

	for _, body := range functionBodies(tree.File) {
		errs = append(errs, verifyScope(tree.Fset, body, allowUnusedLabels)...)
	}

	return errors.Join(errs...)
}

// functionBodies returns the bodies of all functions and function literals.
func functionBodies(file *ast.File) []*ast.BlockStmt {
	var bodies []*ast.BlockStmt

	ast.Inspect(file, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FuncDecl:
			if x.Body != nil {
				bodies = append(bodies, x.Body)
			}
		case *ast.FuncLit:
			bodies = append(bodies, x.Body)
		}

		return true
	})

	return bodies
}

// verifyScope checks one function body. Labels are function scoped, so
// nested function literals are skipped here and verified on their own.
func verifyScope(fset *token.FileSet, body *ast.BlockStmt, allowUnusedLabels bool) []error {
	labels := make(map[string]*ast.LabeledStmt)
	used := make(map[string]bool)

	var (
		branches []*ast.BranchStmt
		errs     []error
	)

	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.LabeledStmt:
			labels[x.Label.Name] = x
		case *ast.BranchStmt:
			if x.Label != nil {
				branches = append(branches, x)
			}
		case *ast.BlockStmt:
			if err := verifyFoldedBlock(fset, x); err != nil {
				errs = append(errs, err)
			}
		}

		return true
	})

	for _, br := range branches {
		if _, ok := labels[br.Label.Name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s at %s", ErrUndefinedLabel, br.Label.Name, fset.Position(br.Pos())))
			continue
		}

		used[br.Label.Name] = true
	}

	if allowUnusedLabels {
		return errs
	}

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if !used[name] {
			errs = append(errs, fmt.Errorf("%w: %s at %s", ErrUnusedLabel, name, fset.Position(labels[name].Pos())))
		}
	}

	return errs
}

func verifyFoldedBlock(fset *token.FileSet, block *ast.BlockStmt) error {
	if len(block.List) < 2 {
		return nil
	}

	for _, stmt := range block.List {
		if isPlaceholderStmt(stmt) {
			return fmt.Errorf("%w: block at %s", ErrMalformedFold, fset.Position(block.Lbrace))
		}
	}

	return nil
}

func isPlaceholderStmt(stmt ast.Stmt) bool {
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return false
	}

	ident, ok := es.X.(*ast.Ident)

	return ok && ident.Name == m.PlaceholderText
}
