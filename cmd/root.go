package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/config"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "cladetrace",
	Short: "Record build-tool invocations for later build reconstruction",
	Long: `cladetrace intercepts build-tool launches (compilers, linkers, ...) and
appends one record per launch to the log named by CLADE_INTERCEPT, so a
downstream analysis pipeline can reconstruct the exact command lines,
working directories and executables used during a build.`,
	// A dropped or partial record would silently corrupt the downstream
	// reconstruction, so every error is fatal: one diagnostic on stderr,
	// non-zero exit, no retries.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load and merge config files.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}
