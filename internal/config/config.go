package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable cladetrace settings. Note that the
// interception destination itself is never configured here: it comes from
// the CLADE_INTERCEPT environment variable only, and a missing variable is a
// hard error on the recording path.
type Config struct {
	Wrappers      []string `json:"wrappers"`       // build tools to wrap
	WrapperDir    string   `json:"wrapper_dir"`    // override wrapper script dir
	DefaultFormat string   `json:"default_format"` // "text" | "json"
}

// DefaultWrappers is the set of build tools wrapped when neither config file
// overrides it.
var DefaultWrappers = []string{"cc", "c++", "gcc", "g++", "clang", "clang++", "ld", "as", "ar"}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DefaultFormat: "text",
		Wrappers:      DefaultWrappers,
	}
}

// LoadGlobal reads ~/.config/cladetrace/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "cladetrace", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .cladetracerc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".cladetracerc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	// Apply global values over defaults.
	if global != nil {
		if global.DefaultFormat != "" {
			result.DefaultFormat = global.DefaultFormat
		}
		if global.WrapperDir != "" {
			result.WrapperDir = global.WrapperDir
		}
		if len(global.Wrappers) > 0 {
			result.Wrappers = global.Wrappers
		}
	}

	// Apply project values over global.
	if project != nil {
		if project.DefaultFormat != "" {
			result.DefaultFormat = project.DefaultFormat
		}
		if project.WrapperDir != "" {
			result.WrapperDir = project.WrapperDir
		}
		if len(project.Wrappers) > 0 {
			result.Wrappers = project.Wrappers
		}
	}

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
