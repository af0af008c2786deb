package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/intercept"
	"github.com/fakeyudi/cladetrace/internal/session"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin a new build session",
	Long: `Start creates a fresh interception log for one build and prints the
export line for CLADE_INTERCEPT. Wrapped tool launches append to that log
until the session is stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStore()
		if err != nil {
			return err
		}

		s, err := store.Load()
		if err != nil && !errors.Is(err, session.ErrNoSession) {
			return err
		}
		if s != nil {
			return fmt.Errorf("session already in progress (started at %s)", s.StartTime.Format(time.RFC3339))
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		dataDir, err := session.DataDir()
		if err != nil {
			return err
		}

		id := uuid.New().String()
		newSession := &session.Session{
			ID:        id,
			StartTime: time.Now(),
			WorkDir:   cwd,
			LogFile:   filepath.Join(dataDir, "cmds-"+id[:8]+".txt"),
		}

		if err := store.Save(newSession); err != nil {
			return err
		}

		fmt.Println("Session started. Export the destination before building:")
		fmt.Printf("  export %s=%s\n", intercept.EnvVar, newSession.LogFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
