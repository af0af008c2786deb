// Package cmds reads an interception log back into structured commands.
// It is the consumer half of the format produced by internal/record: the
// recording path never imports this package, and nothing here interprets
// what the recorded arguments mean.
package cmds

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fakeyudi/cladetrace/internal/record"
)

// Command is one parsed record from the interception log.
type Command struct {
	ID   int      `json:"id"` // 1-based position in the log
	CWD  string   `json:"cwd"`
	Path string   `json:"path"`
	Args []string `json:"args"`
}

// ParseError reports a malformed line in an interception log.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing intercept log %s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse splits one physical log line into a Command. The terminating
// newline, if still present, is dropped first. Arguments containing the
// literal delimiter are mis-split here; that is a structural limitation of
// the format, mirrored from the writer side.
func Parse(line string) (Command, error) {
	line = strings.TrimSuffix(line, "\n")
	fields := strings.Split(line, record.Delimiter)
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("expected at least cwd%spath, got %d field(s)", record.Delimiter, len(fields))
	}
	cmd := Command{
		CWD:  fields[0],
		Path: fields[1],
	}
	for _, f := range fields[2:] {
		cmd.Args = append(cmd.Args, record.UnescapeArg(f))
	}
	return cmd, nil
}

// Load reads every record from the log at path, in file order, assigning
// 1-based IDs by line number. Blank lines are skipped; a malformed line
// yields a ParseError naming the file and line.
func Load(path string) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening intercept log: %w", err)
	}
	defer f.Close()

	var cmds []Command
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Err: err}
		}
		cmd.ID = len(cmds) + 1
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading intercept log %s: %w", path, err)
	}
	return cmds, nil
}

// Count returns the number of records currently in the log at path.
// A missing log counts as zero records, not an error.
func Count(path string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}
	cmds, err := Load(path)
	if err != nil {
		return 0, err
	}
	return len(cmds), nil
}
