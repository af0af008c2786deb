package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/intercept"
)

var recordCmd = &cobra.Command{
	Use:   "record -- <path> [argv...]",
	Short: "Append one invocation record to the CLADE_INTERCEPT log",
	Long: `Record appends a single invocation record without running anything.
The first positional argument is the resolved executable path; any further
arguments are the original argument vector of the intercepted call. This is
the entry point interception mechanisms call once per process launch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return intercept.Capture(args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
