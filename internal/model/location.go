// Package model defines the data structures shared by the folding core and its collaborators.
package model

import (
	"fmt"
	"go/token"
)

// Location is the position of a tree item. It is volatile: the same source
// offset maps to a different Location whenever its image is loaded at another base.
type Location token.Pos

// NoLocation is the zero Location.
const NoLocation = Location(token.NoPos)

// LocationOf converts a token.Pos to a Location.
func LocationOf(pos token.Pos) Location {
	return Location(pos)
}

// Pos returns the location as a token.Pos.
func (l Location) Pos() token.Pos {
	return token.Pos(l)
}

// IsValid reports whether the location refers to a position at all.
func (l Location) IsValid() bool {
	return l != NoLocation
}

func (l Location) String() string {
	return fmt.Sprintf("%#x", int(l))
}

// StableKey is the persisted, rebasing-stable form of a Location: its byte
// offset inside the image it belongs to.
type StableKey uint64

// StableKeySize is the width of a persisted StableKey in bytes.
const StableKeySize = 8
