package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var patchCmd = &cobra.Command{
	Use:   "patch URL",
	Short: "Make a PATCH request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodPatch, args[0])
	},
}

func init() {
	addRequestFlags(patchCmd, true)
}
