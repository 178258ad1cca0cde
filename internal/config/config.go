// Package config loads nthperm defaults from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds defaults that command-line flags override.
type Config struct {
	// Tier is the default capacity tier; 0 picks the smallest tier that fits.
	Tier int `toml:"tier"`
	// Addr is the listen address for the HTTP service.
	Addr string `toml:"addr"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// JSON switches command output to JSON.
	JSON bool `toml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tier:     0,
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/nthperm/config.toml (or the platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nthperm", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true, so an absent default config file is silently skipped.
func Load(path string, optional bool) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return c, fmt.Errorf("error reading config file \"%s\": %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("config file \"%s\": unknown keys %v", path, undecoded)
	}
	return c, c.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Tier {
	case 0, 8, 16, 32:
	default:
		return fmt.Errorf("config: tier must be 8, 16 or 32, got %d", c.Tier)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
