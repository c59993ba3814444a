package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a gofold.yaml with the current settings",
		Long: `Write gofold.yaml to the current directory. It holds the fold store, view
and logging settings in effect, including values taken from flags and
GOFOLD_* variables. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(target); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}

			cmd.Printf("wrote %s\n", target)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
