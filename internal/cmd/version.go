package cmd

import (
	"fmt"

	"github.com/pthm/dilint/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dilint version",
	Long: `Print the dilint version, commit and build toolchain.

Install a release with:
  go install ` + version.Module + `/cmd/dilint@latest`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	RootCmd.AddCommand(versionCmd)
}
