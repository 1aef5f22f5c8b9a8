// Package config loads optional defaults for the zog CLI from a TOML file.
//
// The file lets users keep their library coordinates out of shell history:
//
//	library_id = "1234567"
//	library_type = "user"
//	api_key = "P9NiFoyLeZu2bZNvvuQPDWsd"
//
// Command-line flags always override file values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	zerrors "github.com/zogtools/zog/pkg/errors"
)

// Config holds the defaults a config file may provide.
type Config struct {
	LibraryID   string `toml:"library_id"`
	LibraryType string `toml:"library_type"`
	APIKey      string `toml:"api_key"`
	Local       bool   `toml:"local"`
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/zog/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zog", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error and
// yields the zero Config, so callers can always attempt the default path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, zerrors.Wrap(zerrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if t := cfg.LibraryType; t != "" && t != "user" && t != "group" {
		return Config{}, zerrors.New(zerrors.ErrCodeInvalidInput, "config %s: library_type must be \"user\" or \"group\", got %q", path, t)
	}
	return cfg, nil
}
