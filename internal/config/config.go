// Package config loads the benchtab configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for the benchtab command. Command-line flags take
// precedence over every field.
type Config struct {
	// Table backend (auto, modern, legacy)
	Backend string `yaml:"backend,omitempty"`

	// Legacy table border (rounded, none, ascii, heavy, double)
	Border string `yaml:"border,omitempty"`

	// Color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Diagnostic sink (console, log)
	Diagnostics string `yaml:"diagnostics,omitempty"`

	// Diagnostic dump format (json, yaml)
	DiagnosticsFormat string `yaml:"diagnostics_format,omitempty"`

	// Log handler (text, json)
	LogFormat string `yaml:"log_format,omitempty"`

	// Maximum column width of the legacy table, 0 for none
	MaxWidth int `yaml:"max_width,omitempty"`

	// Columns always excluded, in addition to --exclude
	Exclude []string `yaml:"exclude,omitempty"`
}

// configPathFunc is the function used to get the default config path.
// It can be overridden for testing.
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns <user config dir>/benchtab/config.yaml.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "benchtab", "config.yaml"), nil
}

// DefaultConfigPath returns the path Load reads.
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path. A missing file yields an
// empty config.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}
