// Package cli wires the riposte commands together.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "riposte",
	Short:   "A terminal REST client",
	Version: version,
	Long: `Riposte is a terminal REST client built on an immutable HTTP client
library. It offers one command per HTTP verb, a generic send command, a
latency benchmark, and a runner for YAML-defined request workspaces.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(
		getCmd,
		postCmd,
		putCmd,
		patchCmd,
		deleteCmd,
		headCmd,
		optionsCmd,
		sendCmd,
		benchCmd,
		runCmd,
	)
}
