package cmd

import (
	"github.com/spf13/cobra"

	"gofold.dev/pkg/gofold/internal/domain"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	var contextLines int

	cmd := &cobra.Command{
		Use:   "diff FILES...",
		Short: "Show what the saved folds hide",
		Long:  "Print a unified diff between the plain and the folded rendering of each file.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{Paths: parsePaths(args), Context: contextLines})
		},
	}

	cmd.Flags().IntVarP(&contextLines, contextFlagName, "U", defaultDiffContext, "lines of context around each change")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
