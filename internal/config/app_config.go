// Package config loads application configuration from environment variables
// and the library YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// DataDir is the root data directory. Defaults to ~/.quadrium.
	DataDir string `envconfig:"QUADRIUM_DATA_DIR"`

	// MusicDir is the default music directory scanned when the library file
	// lists none. Defaults to ~/Music.
	MusicDir string `envconfig:"QUADRIUM_MUSIC_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ScanIntervalMinutes is how often the library directories are rescanned.
	// Zero disables periodic scanning.
	ScanIntervalMinutes int `envconfig:"QUADRIUM_SCAN_INTERVAL_MINUTES" default:"30"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.quadrium and MusicDir to ~/Music if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" || c.MusicDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		if c.DataDir == "" {
			c.DataDir = filepath.Join(home, ".quadrium")
		}
		if c.MusicDir == "" {
			c.MusicDir = filepath.Join(home, "Music")
		}
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ScanInterval returns the rescan interval as a duration; zero means disabled.
func (c *AppConfig) ScanInterval() time.Duration {
	if c.ScanIntervalMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ScanIntervalMinutes) * time.Minute
}

// LogDir returns the path to the log directory (~/.quadrium/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the SQLite database file.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "quadrium.db")
}

// LibraryFile returns the path to the library YAML file.
func (c *AppConfig) LibraryFile() string {
	return filepath.Join(c.DataDir, "library.yaml")
}
