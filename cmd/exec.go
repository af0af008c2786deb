package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/intercept"
)

var execAs string

var execCmd = &cobra.Command{
	Use:   "exec -- <command> [args...]",
	Short: "Record a command invocation, then run the command",
	Long: `Exec is the wrapper entry point: it resolves <command>, records the
invocation to the CLADE_INTERCEPT log, then runs the real command with
inherited stdio, exiting with the command's own exit code. Recording
failures abort before the command runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := exec.LookPath(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}

		argv := make([]string, len(args))
		copy(argv, args)
		if execAs != "" {
			// Wrapper scripts bake the absolute tool path into args[0];
			// --as restores the name the tool was invoked under.
			argv[0] = execAs
		}

		if err := intercept.Capture(resolved, argv); err != nil {
			return err
		}

		real := exec.Command(resolved, args[1:]...)
		real.Stdin = os.Stdin
		real.Stdout = os.Stdout
		real.Stderr = os.Stderr
		if err := real.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			return fmt.Errorf("running %s: %w", resolved, err)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().StringVar(&execAs, "as", "", "record this value as argv[0] instead of the command as given")
	rootCmd.AddCommand(execCmd)
}
