package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send METHOD URL",
	Short: "Make a request with an arbitrary HTTP method",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, strings.ToUpper(args[0]), args[1])
	},
}

func init() {
	addRequestFlags(sendCmd, true)
}
