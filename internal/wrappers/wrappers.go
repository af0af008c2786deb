// Package wrappers installs wrapper scripts that route build-tool launches
// through `cladetrace exec`. Putting the wrapper directory at the front of
// PATH makes every plain `gcc`, `ld`, etc. invocation record itself before
// running the real tool.
package wrappers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Dir returns the wrapper script directory. An explicit override (from
// config) wins; otherwise ~/.config/cladetrace/wrappers.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cladetrace", "wrappers"), nil
}

// Script renders the wrapper script for one tool. The real tool path and the
// cladetrace binary path are baked in at install time so the wrapper works
// even though the wrapper directory shadows the tool on PATH.
func Script(cladetraceBin, tool, toolPath string) string {
	return fmt.Sprintf(`#!/bin/sh
# cladetrace wrapper for %s — auto-generated, do not edit manually
exec '%s' exec --as '%s' -- '%s' "$@"
`, tool, cladetraceBin, tool, toolPath)
}

// Install writes one wrapper script per tool into dir, creating it if
// needed. Tools that cannot be found on the current PATH are skipped and
// reported back to the caller; a tool that resolves into dir itself (an
// already-installed wrapper) is re-resolved against the rest of PATH by
// removing dir from the lookup, so reinstalling is safe.
func Install(dir string, tools []string) (installed, skipped []string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating wrapper directory: %w", err)
	}

	self, err := os.Executable()
	if err != nil {
		return nil, nil, fmt.Errorf("locating cladetrace binary: %w", err)
	}

	for _, tool := range tools {
		toolPath, err := lookPathExcluding(tool, dir)
		if err != nil {
			skipped = append(skipped, tool)
			continue
		}
		script := Script(self, tool, toolPath)
		target := filepath.Join(dir, tool)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			return installed, skipped, fmt.Errorf("writing wrapper %s: %w", target, err)
		}
		installed = append(installed, tool)
	}
	return installed, skipped, nil
}

// lookPathExcluding resolves tool on PATH, ignoring entries under exclude so
// a wrapper never resolves to itself.
func lookPathExcluding(tool, exclude string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", err
	}
	if filepath.Dir(path) != exclude {
		return path, nil
	}

	// The first hit is our own wrapper; retry with the wrapper dir removed.
	orig := os.Getenv("PATH")
	var rest []string
	for _, p := range filepath.SplitList(orig) {
		if p != exclude {
			rest = append(rest, p)
		}
	}
	os.Setenv("PATH", strings.Join(rest, string(os.PathListSeparator)))
	defer os.Setenv("PATH", orig)
	return exec.LookPath(tool)
}
