package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X ai-commit/internal/cli.version=...".
var version = "<dev>"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ai-commit %s\n", version)
	},
}
