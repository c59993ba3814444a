// Package controller provides output adapters for displaying folded sources.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "gofold.dev/pkg/gofold/internal/model"
)

// Format selects how fold listings are printed.
type Format string

// Available Format values.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", s, FormatTable, FormatYAML)
	}
}

// Browser is an open image that can be navigated and folded interactively.
type Browser interface {
	Title() string
	Lines() []m.Line
	Cursor() int
	MoveCursor(delta int)
	// Popup lists the actions available on the cursor line.
	Popup() []m.ActionName
	// Run executes action on the cursor line and reports whether it applied.
	Run(ctx context.Context, action m.ActionName) (bool, error)
	// Changes delivers a path whenever the image file changed on disk; nil
	// when the file is not watched.
	Changes() <-chan m.Path
	// Reload rereads the image file.
	Reload(ctx context.Context) error
}

// UI defines the interface for displaying sources and folds.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySource(ctx context.Context, img *m.Image, lines []m.Line) error
	DisplayFolds(ctx context.Context, folds []m.Fold, format Format) error
	DisplayDiff(ctx context.Context, name string, diff string) error
	DisplayActionResult(ctx context.Context, action m.ActionName, img *m.Image, line int, applied bool)
	Browse(ctx context.Context, browser Browser) error
}

// NewUI returns the interactive UI on terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
