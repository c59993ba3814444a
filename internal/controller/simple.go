package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gofold.dev/pkg/gofold/internal/adapter"
	m "gofold.dev/pkg/gofold/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySource prints the rendered lines of img.
func (s *SimpleUI) DisplaySource(ctx context.Context, img *m.Image, lines []m.Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("// %s\n%s", img.Name, adapter.FormatLines(lines))

	return nil
}

// DisplayFolds prints the folds as a table or as YAML.
func (s *SimpleUI) DisplayFolds(ctx context.Context, folds []m.Fold, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format == FormatYAML {
		return s.writeYAML(folds)
	}

	s.printf("%s", renderFoldTable(folds))

	return nil
}

func (s *SimpleUI) writeYAML(folds []m.Fold) error {
	if folds == nil {
		folds = []m.Fold{}
	}

	enc := yaml.NewEncoder(s.cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(map[string][]m.Fold{"folds": folds}); err != nil {
		return fmt.Errorf("failed to encode folds: %w", err)
	}

	return enc.Close()
}

func renderFoldTable(folds []m.Fold) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Image", "Line", "Key", "Resolved"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER})

	images := make(map[string]bool)

	for _, f := range folds {
		images[f.Image] = true

		table.Append([]string{
			f.Image,
			fmt.Sprintf("%d:%d", f.Line, f.Column),
			fmt.Sprintf("%#x", uint64(f.Key)),
			strconv.FormatBool(f.Resolved),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(images)),
		"",
		"",
		fmt.Sprintf("%d folds", len(folds)),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayDiff prints a unified diff between the plain and folded renderings.
func (s *SimpleUI) DisplayDiff(ctx context.Context, name string, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("%s: no folds\n", name)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplayActionResult reports the outcome of a fold or unfold request.
func (s *SimpleUI) DisplayActionResult(ctx context.Context, action m.ActionName, img *m.Image, line int, applied bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !applied {
		s.printf("%s: no block at %s:%d\n", action.Label(), img.Name, line)
		return
	}

	s.printf("%s: %s:%d\n", action.Label(), img.Name, line)
}

// Browse prints the browser contents once; SimpleUI cannot interact.
func (s *SimpleUI) Browse(ctx context.Context, browser Browser) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("// %s\n%s", browser.Title(), adapter.FormatLines(browser.Lines()))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
