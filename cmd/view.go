package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gofold.dev/pkg/gofold/internal/domain"
	m "gofold.dev/pkg/gofold/internal/model"
)

var viewWatchFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a file and fold blocks interactively",
		Long: `Browse a file and fold blocks interactively.

Press c to fold and o to unfold the block under the cursor, enter for the
context menu. With --watch the view is rebuilt whenever the file is saved.
Without a terminal the folded file is printed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Path:  m.Path(args[0]),
				Watch: viper.GetBool(viewWatchKey),
			})
		},
	}

	cmd.Flags().BoolVarP(&viewWatchFlag, watchFlagName, "w", viper.GetBool(viewWatchKey), "rebuild the view when the file changes")
	bindFlagToConfig(cmd.Flags().Lookup(watchFlagName), viewWatchKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
