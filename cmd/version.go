package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gofold version",
		Long:  "Print the gofold module version, its VCS revision when known, and the Go release it was built with.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			for _, line := range versionLines(info, ok) {
				cmd.Println(line)
			}
		},
	}
}

func versionLines(info *debug.BuildInfo, ok bool) []string {
	if !ok || info == nil || info.Main.Version == "" {
		return []string{"gofold version unknown"}
	}

	lines := []string{"gofold version\t" + info.Main.Version}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			lines = append(lines, "gofold revision\t"+s.Value)
		}
	}

	return append(lines, "go version\t"+info.GoVersion)
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
