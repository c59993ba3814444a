package domain_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gofold.dev/pkg/gofold/internal/adapter"
	"gofold.dev/pkg/gofold/internal/controller"
	"gofold.dev/pkg/gofold/internal/domain"
	m "gofold.dev/pkg/gofold/internal/model"
)

const utilSource = `package main

func clamp(x int) int {
	if x < 0 {
		return 0
	}
	return x
}
`

type workspace struct {
	root  string
	main  m.Path
	util  m.Path
	store adapter.Store
	out   *bytes.Buffer
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/w\n\ngo 1.25\n")
	writeFile(t, filepath.Join(root, "main.go"), branchSource)
	writeFile(t, filepath.Join(root, "pkg", "util.go"), utilSource)

	return &workspace{
		root:  root,
		main:  m.Path(filepath.Join(root, "main.go")),
		util:  m.Path(filepath.Join(root, "pkg", "util.go")),
		store: adapter.NewMemoryStore(),
		out:   &bytes.Buffer{},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// workflow returns a fresh workflow sharing the workspace store, as a new
// process reusing the same database would.
func (w *workspace) workflow() domain.Workflow {
	w.out.Reset()

	cmd := &cobra.Command{}
	cmd.SetOut(w.out)

	fs := adapter.NewLocalSourceFSAdapter()

	return domain.NewWorkflow(
		fs,
		adapter.NewLocalImageLoader(fs, 2),
		adapter.NewGoPipeline(adapter.NewLocalGoFileAdapter()),
		adapter.NewTextRenderer(),
		w.store,
		controller.NewSimpleUI(cmd),
	)
}

func TestWorkflow_ShowPlain(t *testing.T) {
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Show(context.Background(), domain.ShowArgs{Paths: []m.Path{ws.main, ws.util}}))

	assert.Equal(t, "// main.go\n"+branchSource+"// pkg/util.go\n"+utilSource, ws.out.String())
}

func TestWorkflow_FoldPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.main, Line: 4}))

	folded := `package main

func max(a, b int) int {
	if a > b {
		{ ... }
	}
	return b
}
`
	assert.Equal(t, "Fold Code: main.go:4\n// main.go\n"+folded, ws.out.String())

	// Loading util.go first moves main.go to another base.
	require.NoError(t, ws.workflow().Show(ctx, domain.ShowArgs{Paths: []m.Path{ws.util, ws.main}}))
	assert.Equal(t, "// pkg/util.go\n"+utilSource+"// main.go\n"+folded, ws.out.String())
}

func TestWorkflow_Unfold(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.main, Line: 4}))
	require.NoError(t, ws.workflow().Unfold(ctx, domain.FoldArgs{Target: ws.main, Line: 4}))

	assert.Equal(t, "Unfold Code: main.go:4\n// main.go\n"+branchSource, ws.out.String())

	require.NoError(t, ws.workflow().Show(ctx, domain.ShowArgs{Paths: []m.Path{ws.main}}))
	assert.Equal(t, "// main.go\n"+branchSource, ws.out.String())
}

func TestWorkflow_FoldWithoutBlock(t *testing.T) {
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(context.Background(), domain.FoldArgs{Target: ws.main, Line: 7}))

	assert.True(t, strings.HasPrefix(ws.out.String(), "Fold Code: no block at main.go:7\n"))
	assert.Contains(t, ws.out.String(), branchSource)
}

func TestWorkflow_FoldMissingTarget(t *testing.T) {
	ws := newWorkspace(t)

	err := ws.workflow().Fold(context.Background(), domain.FoldArgs{Target: m.Path(filepath.Join(ws.root, "nope.go")), Line: 1})
	require.Error(t, err)
}

func TestWorkflow_List(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.main, Line: 4}))
	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.util, Line: 4}))

	t.Run("table", func(t *testing.T) {
		require.NoError(t, ws.workflow().List(ctx, domain.ListArgs{Paths: []m.Path{ws.main, ws.util}, Format: controller.FormatTable}))

		out := ws.out.String()
		assert.Contains(t, out, "main.go")
		assert.Contains(t, out, "pkg/util.go")
		assert.Contains(t, out, "TOTAL FILES 2")
		assert.Contains(t, out, "2 FOLDS")
	})

	t.Run("yaml", func(t *testing.T) {
		require.NoError(t, ws.workflow().List(ctx, domain.ListArgs{Paths: []m.Path{ws.util, ws.main}, Format: controller.FormatYAML}))

		var decoded struct {
			Folds []m.Fold `yaml:"folds"`
		}
		require.NoError(t, yaml.Unmarshal(ws.out.Bytes(), &decoded))
		require.Len(t, decoded.Folds, 2)

		assert.Equal(t, "pkg/util.go", decoded.Folds[0].Image)
		assert.Equal(t, "main.go", decoded.Folds[1].Image)

		for _, f := range decoded.Folds {
			assert.Equal(t, 4, f.Line)
			assert.True(t, f.Resolved)
		}

		// The key is the offset of the brace in its own file.
		assert.Equal(t, m.StableKey(strings.Index(branchSource, "{\n\t\treturn a")), decoded.Folds[1].Key)
	})
}

func TestWorkflow_ListNothingFolded(t *testing.T) {
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().List(context.Background(), domain.ListArgs{Paths: []m.Path{ws.main}, Format: controller.FormatYAML}))
	assert.Equal(t, "folds: []\n", ws.out.String())
}

func TestWorkflow_Diff(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.main, Line: 4}))
	require.NoError(t, ws.workflow().Diff(ctx, domain.DiffArgs{Paths: []m.Path{ws.main, ws.util}, Context: 1}))

	out := ws.out.String()
	assert.Contains(t, out, "--- main.go\n")
	assert.Contains(t, out, "+++ main.go (folded)\n")
	assert.Contains(t, out, "-\t\treturn a\n")
	assert.Contains(t, out, "+\t\t{ ... }\n")
	assert.Contains(t, out, "pkg/util.go: no folds\n")
}

func TestWorkflow_ViewWithoutTerminal(t *testing.T) {
	ctx := context.Background()
	ws := newWorkspace(t)

	require.NoError(t, ws.workflow().Fold(ctx, domain.FoldArgs{Target: ws.util, Line: 4}))
	require.NoError(t, ws.workflow().View(ctx, domain.ViewArgs{Path: ws.util}))

	out := ws.out.String()
	assert.True(t, strings.HasPrefix(out, "// pkg/util.go\n"))
	assert.Contains(t, out, "{ ... }")
}

func TestWorkflow_DuplicatePaths(t *testing.T) {
	ws := newWorkspace(t)

	err := ws.workflow().Show(context.Background(), domain.ShowArgs{Paths: []m.Path{ws.main, ws.main}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "given twice")
}
