package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/cladetrace/internal/cmds"
)

var watchFromStart bool

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Stream records as they are appended to an interception log",
	Long: `Watch follows an interception log and prints each record as build
tools append it. The log does not need to exist yet; watch picks it up as
soon as the first record is written. Interrupt to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the parent directory so creation of the log is seen too.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
		}

		var offset int64
		if !watchFromStart {
			if info, err := os.Stat(path); err == nil {
				offset = info.Size()
			}
		}

		// Records already present at startup (with --from-start).
		nextID := 1
		var partial string
		offset, nextID, partial, err = drain(cmd, path, offset, nextID, partial)
		if err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Name != path || !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				offset, nextID, partial, err = drain(cmd, path, offset, nextID, partial)
				if err != nil {
					return err
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
	},
}

// drain reads everything appended since offset and prints each complete
// record. A trailing fragment without its terminating newline (a write
// caught mid-append) is carried over to the next call.
func drain(cmd *cobra.Command, path string, offset int64, nextID int, partial string) (int64, int, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return offset, nextID, partial, nil
		}
		return offset, nextID, partial, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, nextID, partial, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return offset, nextID, partial, err
	}
	offset += int64(len(data))

	buf := partial + string(data)
	for {
		nl := strings.IndexByte(buf, '\n')
		if nl < 0 {
			break
		}
		line := buf[:nl]
		buf = buf[nl+1:]
		if line == "" {
			continue
		}
		c, err := cmds.Parse(line)
		if err != nil {
			cmd.PrintErrf("warning: skipping malformed record: %v\n", err)
			continue
		}
		c.ID = nextID
		nextID++
		cmd.Printf("%d. %s (cwd %s)\n", c.ID, strings.Join(append([]string{c.Path}, c.Args...), " "), c.CWD)
	}
	return offset, nextID, buf, nil
}

func init() {
	watchCmd.Flags().BoolVar(&watchFromStart, "from-start", false, "print records already in the log before following")
	rootCmd.AddCommand(watchCmd)
}
