// Package btoepconfig loads the optional JWCC (JSON-with-commas-and-comments)
// defaults file that supplies default values for CLI flags the caller
// omits. It never changes an operation's semantics — only which value a
// flag defaults to when unset.
package btoepconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the file name looked for under the config directory.
const ConfigFileName = "config.jwcc"

// Config holds the defaults a config file can override.
type Config struct {
	// OnConflict is the default --on-conflict policy for btoep-add:
	// "error", "keep", or "overwrite".
	OnConflict string `json:"on_conflict,omitempty"` //nolint:tagliatelle // snake_case for config file

	// RangeFormat is the default --range-format for btoep-list-ranges:
	// "inclusive" or "exclusive".
	RangeFormat string `json:"range_format,omitempty"` //nolint:tagliatelle // snake_case for config file
}

var errConfigFileNotFound = errors.New("config file not found")

// Default returns the built-in defaults applied when no config file exists
// and no flag is given.
func Default() Config {
	return Config{OnConflict: "error", RangeFormat: "exclusive"}
}

// DefaultPath returns $XDG_CONFIG_HOME/btoep/config.jwcc, falling back to
// ~/.config/btoep/config.jwcc. Returns "" if neither can be determined.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "btoep", ConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "btoep", ConfigFileName)
}

// Load merges the built-in defaults with a config file, if one is found.
//
// explicitPath, if non-empty, must exist (a missing explicit path is an
// error). Otherwise the default search path (see [DefaultPath]) is used,
// and a missing file there simply means "no overrides" rather than a
// failure — the config file is entirely optional.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	mustExist := explicitPath != ""

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
	}

	fileCfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWCC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func merge(base, override Config) Config {
	if override.OnConflict != "" {
		base.OnConflict = override.OnConflict
	}

	if override.RangeFormat != "" {
		base.RangeFormat = override.RangeFormat
	}

	return base
}
