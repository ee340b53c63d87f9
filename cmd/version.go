package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/vietdv277/awsprof/cmd.Version=..." by release builds.
// Unset values are filled from the module build info.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// buildInfo is the version, commit and build date, falling back to what the Go toolchain
// stamped into the binary
func buildInfo() (version, commit, date string) {
	version, commit, date = Version, Commit, BuildDate

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, orUnknown(commit), orUnknown(date)
	}

	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "" {
				commit = setting.Value
			}
		case "vcs.time":
			if date == "" {
				date = setting.Value
			}
		}
	}

	return version, orUnknown(commit), orUnknown(date)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version, commit, date := buildInfo()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "awsprof")
		fmt.Fprintf(out, "  Version:    %s\n", version)
		fmt.Fprintf(out, "  Commit:     %s\n", commit)
		fmt.Fprintf(out, "  Build Date: %s\n", date)
		fmt.Fprintf(out, "  Go:         %s\n", runtime.Version())
	},
}

func init() {
	version, _, _ := buildInfo()
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("awsprof {{.Version}}\n")

	rootCmd.AddCommand(versionCmd)
}
