package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/wrappers"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install wrapper scripts for the configured build tools",
	Long: `Setup writes one wrapper script per configured build tool (cc, gcc,
clang, ld, ... by default, see the "wrappers" config key) into the wrapper
directory and prints the PATH line to make the wrappers shadow the real
tools. Re-run anytime; wrappers are regenerated in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := wrappers.Dir(GetConfig().WrapperDir)
		if err != nil {
			return err
		}

		installed, skipped, err := wrappers.Install(dir, GetConfig().Wrappers)
		if err != nil {
			return err
		}

		for _, tool := range installed {
			fmt.Printf("  ✓ wrapped %s\n", tool)
		}
		for _, tool := range skipped {
			fmt.Printf("  ⚠ skipped %s (not found on PATH)\n", tool)
		}
		if len(installed) == 0 {
			return fmt.Errorf("no build tools found to wrap")
		}

		fmt.Printf("\n  Prepend the wrapper directory to PATH before building:\n")
		fmt.Printf("    export PATH=%s:$PATH\n\n", dir)
		fmt.Println("  Then run 'cladetrace start' and export CLADE_INTERCEPT as printed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
