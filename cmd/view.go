package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/cmds"
	"github.com/fakeyudi/cladetrace/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse an interception log interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		list, err := cmds.Load(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		if plainOutput || !term.IsTerminal(os.Stdout.Fd()) {
			printCommands(list)
			return nil
		}
		return tui.Run(list, path)
	},
}

// printCommands writes a plain-text listing to stdout.
func printCommands(list []cmds.Command) {
	if len(list) == 0 {
		fmt.Println("(no records)")
		return
	}
	for _, c := range list {
		fmt.Printf("%d. %s\n", c.ID, strings.Join(append([]string{c.Path}, c.Args...), " "))
		fmt.Printf("   cwd: %s\n", c.CWD)
	}
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of TUI")
	rootCmd.AddCommand(viewCmd)
}
