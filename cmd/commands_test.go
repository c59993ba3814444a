package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gofold.dev/pkg/gofold/internal/controller"
	"gofold.dev/pkg/gofold/internal/domain"
	domainmocks "gofold.dev/pkg/gofold/internal/domain/mocks"
	m "gofold.dev/pkg/gofold/internal/model"
)

// newTestCmd returns a root command with sub attached and the global
// workflow replaced by a mock for the duration of the test.
func newTestCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()
	useTempLog(t)

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

func TestShowCmd_PassesPathsInOrder(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newShowCmd())

	mockWorkflow.On("Show", mock.Anything, domain.ShowArgs{Paths: []m.Path{"b.go", "a.go"}}).Return(nil)

	cmd.SetArgs([]string{"show", "b.go", "a.go"})
	require.NoError(t, cmd.Execute())
}

func TestShowCmd_RequiresFiles(t *testing.T) {
	cmd, _ := newTestCmd(t, newShowCmd())

	cmd.SetArgs([]string{"show"})
	require.Error(t, cmd.Execute())
}

func TestShowCmd_ReturnsWorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newShowCmd())
	boom := errors.New("boom")

	mockWorkflow.On("Show", mock.Anything, mock.Anything).Return(boom)

	cmd.SetArgs([]string{"show", "main.go"})
	require.ErrorIs(t, cmd.Execute(), boom)
}

func TestFoldCmd_ParsesTarget(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newFoldCmd())

	mockWorkflow.On("Fold", mock.Anything, domain.FoldArgs{
		Paths:  []m.Path{"util.go"},
		Target: "main.go",
		Line:   4,
	}).Return(nil)

	cmd.SetArgs([]string{"fold", "main.go:4", "util.go"})
	require.NoError(t, cmd.Execute())
}

func TestFoldCmd_RejectsBadTarget(t *testing.T) {
	cmd, _ := newTestCmd(t, newFoldCmd())

	cmd.SetArgs([]string{"fold", "main.go"})
	require.Error(t, cmd.Execute())
}

func TestUnfoldCmd_ParsesTarget(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newUnfoldCmd())

	mockWorkflow.On("Unfold", mock.Anything, mock.MatchedBy(func(args domain.FoldArgs) bool {
		return args.Target == m.Path("pkg/util.go") && args.Line == 12 && len(args.Paths) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"unfold", "pkg/util.go:12"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_Formats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want controller.Format
	}{
		{"default table", []string{"list", "main.go"}, controller.FormatTable},
		{"yaml", []string{"list", "--format", "yaml", "main.go"}, controller.FormatYAML},
		{"short flag", []string{"list", "-f", "yaml", "main.go"}, controller.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow := newTestCmd(t, newListCmd())

			mockWorkflow.On("List", mock.Anything, domain.ListArgs{Paths: []m.Path{"main.go"}, Format: tt.want}).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestListCmd_RejectsUnknownFormat(t *testing.T) {
	cmd, _ := newTestCmd(t, newListCmd())

	cmd.SetArgs([]string{"list", "--format", "json", "main.go"})
	require.Error(t, cmd.Execute())
}

func TestDiffCmd_Context(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newDiffCmd())

	mockWorkflow.On("Diff", mock.Anything, domain.DiffArgs{Paths: []m.Path{"main.go"}, Context: defaultDiffContext}).Return(nil).Once()
	mockWorkflow.On("Diff", mock.Anything, domain.DiffArgs{Paths: []m.Path{"main.go"}, Context: 0}).Return(nil).Once()

	cmd.SetArgs([]string{"diff", "main.go"})
	require.NoError(t, cmd.Execute())

	cmd.SetArgs([]string{"diff", "-U", "0", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_WatchesByDefault(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Path: "main.go", Watch: true}).Return(nil)

	cmd.SetArgs([]string{"view", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_WatchFlag(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Path: "main.go", Watch: false}).Return(nil)

	cmd.SetArgs([]string{"view", "--watch=false", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_WatchFromEnvironment(t *testing.T) {
	t.Setenv(envPrefix+"_VIEW_WATCH", "false")

	cmd, mockWorkflow := newTestCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return !args.Watch
	})).Return(nil)

	cmd.SetArgs([]string{"view", "main.go"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_SingleFile(t *testing.T) {
	cmd, _ := newTestCmd(t, newViewCmd())

	cmd.SetArgs([]string{"view", "a.go", "b.go"})
	require.Error(t, cmd.Execute())
}
