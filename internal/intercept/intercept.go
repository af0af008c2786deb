// Package intercept appends invocation records to the shared interception
// log. The destination is named by the CLADE_INTERCEPT environment variable,
// conventionally exported by `cladetrace start`. Every failure here is fatal
// to the intercepted process: a silently dropped record would corrupt the
// downstream build reconstruction with no visible symptom, so errors
// propagate all the way up and the top-level command exits non-zero.
package intercept

import (
	"errors"
	"fmt"
	"os"

	"github.com/fakeyudi/cladetrace/internal/record"
)

// EnvVar names the destination log file for intercepted calls.
const EnvVar = "CLADE_INTERCEPT"

// ErrNotConfigured is returned when CLADE_INTERCEPT is unset or empty.
// Interception with no destination is a misconfiguration of the surrounding
// build environment, not a recoverable condition.
var ErrNotConfigured = errors.New(EnvVar + " is not set: environment is not prepared for interception")

// Destination returns the configured log file path.
func Destination() (string, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return "", ErrNotConfigured
	}
	return path, nil
}

// Append writes one encoded record to the destination log. The file is
// opened in append mode and created if absent; the handle is closed on every
// exit path. No lock is taken around open+write+close — concurrent writers
// from independent processes rely on O_APPEND keeping small writes
// unfragmented (see DESIGN.md, open question).
func Append(line string) error {
	path, err := Destination()
	if err != nil {
		return err
	}
	return AppendTo(path, line)
}

// AppendTo writes one encoded record to the log at path.
func AppendTo(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening intercept log %s: %w", path, err)
	}
	defer f.Close()

	n, err := f.WriteString(line)
	if err != nil {
		return fmt.Errorf("writing intercept log %s: %w", path, err)
	}
	if n < len(line) {
		return fmt.Errorf("writing intercept log %s: short write (%d of %d bytes)", path, n, len(line))
	}
	return nil
}

// Capture records one intercepted invocation: it resolves the current
// working directory, encodes the call, and appends it to the configured
// destination. path is the resolved executable path; args is the original
// argument vector (argv[0] included, possibly empty).
func Capture(path string, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	call := record.Record{CWD: cwd, Path: path, Args: args}
	return Append(call.Line())
}
