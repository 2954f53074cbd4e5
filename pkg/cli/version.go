package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "formd %s (commit %s, built %s)\n",
			version, commit, buildDate)
	},
}

func initVersionCmd() {
	rootCmd.AddCommand(versionCmd)
}
