package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/cmds"
	"github.com/fakeyudi/cladetrace/internal/intercept"
	"github.com/fakeyudi/cladetrace/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current build session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStore()
		if err != nil {
			return err
		}

		s, err := store.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				cmd.Println("no active session")
				return nil
			}
			return err
		}

		count, err := cmds.Count(s.LogFile)
		if err != nil {
			return err
		}

		cmd.Printf("Started: %s\n", s.StartTime.Format(time.RFC3339))
		cmd.Printf("Duration: %s\n", time.Since(s.StartTime).Round(time.Second).String())
		cmd.Printf("Work dir: %s\n", s.WorkDir)
		cmd.Printf("Log: %s\n", s.LogFile)
		cmd.Printf("Records: %d\n", count)

		if env := os.Getenv(intercept.EnvVar); env != s.LogFile {
			cmd.Printf("warning: %s is %q, not the session log — wrapped calls will not land in this session\n",
				intercept.EnvVar, env)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
