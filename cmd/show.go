package cmd

import (
	"github.com/spf13/cobra"

	"gofold.dev/pkg/gofold/internal/domain"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILES...",
		Short: "Print files with their saved folds applied",
		Long:  "Print files with their saved folds applied.\n\n" + fileArgsHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Show(cmd.Context(), domain.ShowArgs{Paths: parsePaths(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
