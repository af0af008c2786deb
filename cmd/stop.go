package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/cmds"
	"github.com/fakeyudi/cladetrace/internal/session"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the current build session",
	Long: `Stop clears the active session and reports what was recorded. The
interception log itself is kept: logs are append-only and never truncated
or rotated by cladetrace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStore()
		if err != nil {
			return err
		}

		s, err := store.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return fmt.Errorf("no active session")
			}
			return err
		}

		count, err := cmds.Count(s.LogFile)
		if err != nil {
			return err
		}

		if err := store.Delete(); err != nil {
			return err
		}

		duration := time.Since(s.StartTime).Round(time.Second)
		fmt.Printf("Session stopped after %s. Recorded %d command(s).\n", duration, count)
		fmt.Printf("Log: %s\n", s.LogFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
