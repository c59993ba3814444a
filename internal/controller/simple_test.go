package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "gofold.dev/pkg/gofold/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

var testFolds = []m.Fold{
	{Image: "main.go", Location: 0x1040, Key: 0x40, Line: 4, Column: 11, Resolved: true},
	{Image: "pkg/util.go", Location: 0x2010, Key: 0x10, Line: 2, Column: 14, Resolved: false},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("json")
	require.Error(t, err)
}

func TestSimpleUI_DisplaySource(t *testing.T) {
	ui, out := newTestUI()

	lines := []m.Line{
		{Text: "package main"},
		{},
		{Text: "func f() {"},
		{Text: m.PlaceholderText, Indent: 1, Folded: true},
		{Text: "}"},
	}

	err := ui.DisplaySource(context.Background(), &m.Image{Name: "main.go"}, lines)
	require.NoError(t, err)
	assert.Equal(t, "// main.go\npackage main\n\nfunc f() {\n\t{ ... }\n}\n", out.String())
}

func TestSimpleUI_DisplayFolds_Table(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.DisplayFolds(context.Background(), testFolds, FormatTable))

	output := out.String()
	assert.Contains(t, output, "main.go")
	assert.Contains(t, output, "pkg/util.go")
	assert.Contains(t, output, "4:11")
	assert.Contains(t, output, "0x40")
	assert.Contains(t, output, "2 FOLDS")
}

func TestSimpleUI_DisplayFolds_YAML(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.DisplayFolds(context.Background(), testFolds, FormatYAML))

	var decoded struct {
		Folds []m.Fold `yaml:"folds"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Folds, 2)
	assert.Equal(t, "pkg/util.go", decoded.Folds[1].Image)
	assert.Equal(t, m.StableKey(0x10), decoded.Folds[1].Key)
	assert.False(t, decoded.Folds[1].Resolved)
	assert.NotContains(t, out.String(), "location")
}

func TestSimpleUI_DisplayFolds_EmptyYAML(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.DisplayFolds(context.Background(), nil, FormatYAML))
	assert.Equal(t, "folds: []\n", out.String())
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.DisplayDiff(context.Background(), "main.go", ""))
	assert.Equal(t, "main.go: no folds\n", out.String())

	out.Reset()
	require.NoError(t, ui.DisplayDiff(context.Background(), "main.go", "--- a\n+++ b\n"))
	assert.Equal(t, "--- a\n+++ b\n", out.String())
}

func TestSimpleUI_DisplayActionResult(t *testing.T) {
	ui, out := newTestUI()
	img := &m.Image{Name: "main.go"}

	ui.DisplayActionResult(context.Background(), m.ActionFold, img, 4, true)
	ui.DisplayActionResult(context.Background(), m.ActionUnfold, img, 5, false)

	assert.Equal(t, "Fold Code: main.go:4\nUnfold Code: no block at main.go:5\n", out.String())
}

func TestSimpleUI_Browse(t *testing.T) {
	ui, out := newTestUI()

	require.NoError(t, ui.Browse(context.Background(), newFakeBrowser(3)))
	assert.Equal(t, "// fake.go\nline 0\nline 1\nline 2\n", out.String())
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplaySource(ctx, &m.Image{Name: "main.go"}, nil))
	require.Error(t, ui.DisplayFolds(ctx, testFolds, FormatTable))
	ui.DisplayActionResult(ctx, m.ActionFold, &m.Image{Name: "main.go"}, 1, true)
	assert.Empty(t, out.String())
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
