// Package config loads foldplay settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "foldplay"

// DefaultTickInterval is the position refresh cadence.
const DefaultTickInterval = time.Second

type Config struct {
	DefaultFolder string   `koanf:"default_folder"` // loaded at startup when no folder argument is given
	Extensions    []string `koanf:"extensions"`     // audio extensions picked up from a folder

	// Startup toggles, not persisted
	Shuffle bool `koanf:"shuffle"`
	Repeat  bool `koanf:"repeat"`

	TickInterval  time.Duration `koanf:"tick_interval"`
	SortPlaylist  bool          `koanf:"sort_playlist"` // sort by name instead of directory order
	WatchFolder   bool          `koanf:"watch_folder"`  // rescan when files are added or removed
	Notifications bool          `koanf:"notifications"` // desktop notification on track start
	MPRIS         bool          `koanf:"mpris"`         // media keys over D-Bus (Linux)

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name
	File  string `koanf:"file"`  // log file path, "" disables logging
}

func defaults() map[string]any {
	return map[string]any{
		"extensions":    []string{"mp3", "wav", "ogg", "flac"},
		"tick_interval": DefaultTickInterval.String(),
		"notifications": true,
		"mpris":         true,
		"log.level":     "info",
		"log.file":      filepath.Join(xdg.StateHome, appName, appName+".log"),
	}
}

// Load merges the built-in defaults with the config files found on disk.
// explicit names an extra file given on the command line; it must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.DefaultFolder = expandPath(c.DefaultFolder)
	c.Log.File = expandPath(c.Log.File)

	if c.TickInterval < 0 {
		return errors.New("tick_interval must be positive")
	}
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	return nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/foldplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
