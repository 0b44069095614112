// Package cli wires the gandalf commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gandalf",
	Short: "AI gatekeeper for git commits",
	Long: `Gandalf reviews pending changes with a local language model before
they are committed. Diff goes in, an ALLOW/WARN/BLOCK decision comes out,
enforced through the exit code.`,
	SilenceUsage: true,
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = 0

func init() {
	rootCmd.AddCommand(guardCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return exitCode
}
