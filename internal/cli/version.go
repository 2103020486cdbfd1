package cli

import (
	"fmt"

	"github.com/pablasso/trowel/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the trowel version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "trowel %s (commit %s, built %s)\n",
		version.Version, version.CommitSHA, version.BuildDate)
	return nil
}
