package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/awsprof/internal/ui"
	"github.com/vietdv277/awsprof/internal/watch"
)

var profileWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate profiles whenever the AWS files change",
	Long: `Print the profile table, then reload and print it again every time
~/.aws/config or ~/.aws/credentials is saved. Stop with Ctrl+C.

Examples:
  awsprof profile watch`,
	Args: cobra.NoArgs,
	RunE: runProfileWatch,
}

func init() {
	profileCmd.AddCommand(profileWatchCmd)
}

func runProfileWatch(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	out := cmd.OutOrStdout()

	paths := m.Paths()
	fmt.Fprintf(out, "Watching %s and %s\n", paths.ConfigFile, paths.CredentialsFile)
	ui.PrintProfileTable(out, m.Profiles(), m.CurrentProfile())

	return watch.Run(cmd.Context(), m, watch.Options{
		Logger: logger,
		OnReload: func(err error) {
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				return
			}
			fmt.Fprintln(out)
			ui.PrintProfileTable(out, m.Profiles(), m.CurrentProfile())
		},
	})
}
