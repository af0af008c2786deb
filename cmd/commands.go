package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/cmds"
)

var commandsFormat string

var commandsCmd = &cobra.Command{
	Use:   "commands <file>",
	Short: "List the records in an interception log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := cmds.Load(args[0])
		if err != nil {
			return err
		}

		format := commandsFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}

		switch format {
		case "json":
			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
		case "text", "":
			for _, c := range list {
				printCommand(cmd, c)
			}
		default:
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}
		return nil
	},
}

// printCommand writes one record in the plain text listing format.
func printCommand(cmd *cobra.Command, c cmds.Command) {
	line := c.Path
	if len(c.Args) > 0 {
		line = strings.Join(c.Args, " ")
	}
	cmd.Printf("%d. %s\n", c.ID, line)
	cmd.Printf("   path: %s\n", c.Path)
	cmd.Printf("   cwd:  %s\n", c.CWD)
}

func init() {
	commandsCmd.Flags().StringVar(&commandsFormat, "format", "", "Output format: text or json (overrides config)")
	rootCmd.AddCommand(commandsCmd)
}
