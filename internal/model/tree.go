package model

import (
	"go/ast"
	"go/token"
)

// Maturity is a checkpoint of the tree construction pipeline. Stages are
// ordered; a tree only moves forward.
type Maturity int

const (
	// MaturityZero is a tree that has not been built yet.
	MaturityZero Maturity = iota
	// MaturityBuilt is a freshly parsed tree.
	MaturityBuilt
	// MaturityTrans1 is a tree whose labels and branches were checked.
	MaturityTrans1
	// MaturityNice is a structurally normalized tree that has not gone
	// through final verification.
	MaturityNice
	// MaturityFinal is a verified tree ready for rendering.
	MaturityFinal
)

var maturityNames = [...]string{"zero", "built", "trans1", "nice", "final"}

func (s Maturity) String() string {
	if s < 0 || int(s) >= len(maturityNames) {
		return "unknown"
	}

	return maturityNames[s]
}

// Tree is one instance of the syntax tree of an image. Trees are disposable:
// every rebuild produces a new one from the image source.
type Tree struct {
	Image    *Image
	Fset     *token.FileSet
	File     *ast.File
	Maturity Maturity

	// AllowUnusedLabels is set once a verification accepted labels that
	// lost their last reference; later verifications keep accepting them.
	AllowUnusedLabels bool
}

// Position resolves loc against the tree's file set.
func (t *Tree) Position(loc Location) token.Position {
	if t == nil || t.Fset == nil {
		return token.Position{}
	}

	return t.Fset.Position(loc.Pos())
}

// PlaceholderText is the visible text of a collapsed block.
const PlaceholderText = "{ ... }"
