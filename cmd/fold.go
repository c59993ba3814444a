package cmd

import (
	"github.com/spf13/cobra"

	"gofold.dev/pkg/gofold/internal/domain"
)

// foldCmd represents the fold command.
var foldCmd = newFoldCmd()

// unfoldCmd represents the unfold command.
var unfoldCmd = newUnfoldCmd()

func newFoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fold FILE:LINE [FILES...]",
		Short: "Fold the block opening on a line",
		Long:  foldLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foldArgs, err := parseFoldArgs(args)
			if err != nil {
				return err
			}

			return workflow.Fold(cmd.Context(), foldArgs)
		},
	}
}

func newUnfoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfold FILE:LINE [FILES...]",
		Short: "Unfold the block opening on a line",
		Long:  unfoldLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foldArgs, err := parseFoldArgs(args)
			if err != nil {
				return err
			}

			return workflow.Unfold(cmd.Context(), foldArgs)
		},
	}
}

func parseFoldArgs(args []string) (domain.FoldArgs, error) {
	target, line, err := parseFileLine(args[0])
	if err != nil {
		return domain.FoldArgs{}, err
	}

	return domain.FoldArgs{Paths: parsePaths(args[1:]), Target: target, Line: line}, nil
}

func init() {
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(unfoldCmd)
}
