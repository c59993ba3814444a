package cmd

import (
	"github.com/spf13/cobra"

	"gofold.dev/pkg/gofold/internal/controller"
	"gofold.dev/pkg/gofold/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list FILES...",
		Short: "List the saved folds of files",
		Long:  "List the saved folds of files with their line and stable key.\n\n" + fileArgsHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := controller.ParseFormat(format)
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{Paths: parsePaths(args), Format: f})
		},
	}

	cmd.Flags().StringVarP(&format, formatFlagName, "f", string(controller.FormatTable), "output format (table or yaml)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
