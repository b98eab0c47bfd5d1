package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/state"
)

type Config struct {
	LibraryRoot string   `koanf:"library_root"` // folder offered when importing
	Extensions  []string `koanf:"extensions"`   // document extensions collected by import

	// Notifications enables a desktop notification when an import finishes.
	Notifications bool `koanf:"notifications"`

	Storage StorageConfig `koanf:"storage"`
	View    ViewConfig    `koanf:"view"`
	Log     LogConfig     `koanf:"log"`
	MPRIS   MPRISConfig   `koanf:"mpris"`
}

// StorageConfig selects where the catalog is kept.
type StorageConfig struct {
	Backend string `koanf:"backend"` // "sqlite" or "file" (default: "sqlite")
	Path    string `koanf:"path"`    // empty means the backend's default under the XDG data dir
}

// ViewConfig holds the initial ordering of the library.
type ViewConfig struct {
	Sort       string `koanf:"sort"` // band, album, song or lastModified (default: band)
	Descending bool   `koanf:"descending"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn or error (default: info)
	File  string `koanf:"file"`  // empty means tablib.log under the XDG state dir
}

// MPRISConfig controls the media-key remote.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// Load reads the default config files, then any extra files in order.
// Default files that do not exist are skipped; extra files must exist.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	for _, path := range extra {
		path = ExpandPath(path)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LibraryRoot != "" {
		c.LibraryRoot = ExpandPath(c.LibraryRoot)
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), importer.DefaultExtensions...)
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = state.BackendSQLite
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.Storage.Path != "" {
		c.Storage.Path = ExpandPath(c.Storage.Path)
	}
	if c.View.Sort == "" {
		c.View.Sort = string(grouping.SortBand)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File != "" {
		c.Log.File = ExpandPath(c.Log.File)
	}
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := grouping.ParseSortKey(c.View.Sort); err != nil {
		errs = append(errs, fmt.Errorf("view.sort: %w", err))
	}
	switch c.Storage.Backend {
	case state.BackendSQLite, state.BackendFile:
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tablib/config.toml
		filepath.Join(xdg.ConfigHome, "tablib", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SortKey returns the configured initial sort key.
func (c *Config) SortKey() grouping.SortKey {
	key, err := grouping.ParseSortKey(c.View.Sort)
	if err != nil {
		return grouping.SortBand
	}
	return key
}

// Criteria returns the initial library criteria.
func (c *Config) Criteria() grouping.Criteria {
	crit := grouping.DefaultCriteria()
	crit.Key = c.SortKey()
	crit.Ascending = !c.View.Descending
	return crit
}

// LogLevel parses the configured level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// MPRISEnabled reports whether the media-key remote should be started.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// LogPath returns the log file for the terminal UI.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile("tablib/tablib.log")
}
