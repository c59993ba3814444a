package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	m "gofold.dev/pkg/gofold/internal/model"
)

// GoFileAdapter encapsulates Go parsing so the pipeline can focus on its
// stages while delegating compilation details to an infrastructure component.
type GoFileAdapter interface {
	// Parse builds a fresh AST for the image. Positions of the returned tree
	// start at the image base, so locations recorded against an earlier
	// tree of the same image stay valid.
	Parse(ctx context.Context, img *m.Image) (*token.FileSet, *ast.File, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the image source inside a file set pinned at the image base.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, img *m.Image) (*token.FileSet, *ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fset, err := pinnedFileSet(img.Base)
	if err != nil {
		return nil, nil, err
	}

	file, err := parser.ParseFile(fset, string(img.Path), img.Source, parser.SkipObjectResolution)
	if err != nil {
		return nil, nil, err
	}

	if tf := fset.File(file.Package); tf == nil || tf.Base() != img.Base {
		return nil, nil, fmt.Errorf("image %s parsed at unexpected base", img.Name)
	}

	return fset, file, nil
}

// pinnedFileSet returns an empty file set whose next file starts at base.
func pinnedFileSet(base int) (*token.FileSet, error) {
	fset := token.NewFileSet()
	if base < fset.Base() {
		return nil, fmt.Errorf("invalid image base %d", base)
	}

	if base > fset.Base() {
		// Reserve the gap below the image with an anonymous file.
		fset.AddFile("", -1, base-fset.Base()-1)
	}

	return fset, nil
}
