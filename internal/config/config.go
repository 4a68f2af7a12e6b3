// Package config loads quickspeak settings from defaults, an optional YAML
// file and QUICKSPEAK_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quickspeak/internal/store"
)

// Config holds process-level settings. Store contents are not configured
// here; they live in the snapshot database.
type Config struct {
	// DBPath is the SQLite file holding snapshots and the activity log.
	// Empty resolves to store.DefaultDBPath.
	DBPath string `yaml:"db_path"`

	// LogMode is "dev" (console) or "prod" (JSON).
	LogMode string `yaml:"log_mode"`
	// LogLevel is a zap level name. Default: "warn".
	LogLevel string `yaml:"log_level"`

	// SnapshotKeep is how many snapshots survive a save. Default: 10.
	SnapshotKeep int `yaml:"snapshot_keep"`

	// DemoData seeds bookmarks and conversations on first run.
	DemoData bool `yaml:"demo_data"`

	// SystemDarkMode stands in for the platform dark-mode signal.
	SystemDarkMode bool `yaml:"system_dark_mode"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogMode:      "dev",
		LogLevel:     "warn",
		SnapshotKeep: 10,
		DemoData:     true,
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// non-empty, or QUICKSPEAK_CONFIG is set), then the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("QUICKSPEAK_CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("resolve db path: %w", err)
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("QUICKSPEAK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("QUICKSPEAK_LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("QUICKSPEAK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("QUICKSPEAK_SNAPSHOT_KEEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUICKSPEAK_SNAPSHOT_KEEP: %w", err)
		}
		c.SnapshotKeep = n
	}
	if v := os.Getenv("QUICKSPEAK_DEMO_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUICKSPEAK_DEMO_DATA: %w", err)
		}
		c.DemoData = b
	}
	if v := os.Getenv("QUICKSPEAK_SYSTEM_DARK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUICKSPEAK_SYSTEM_DARK: %w", err)
		}
		c.SystemDarkMode = b
	}
	return nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	if c.SnapshotKeep < 1 {
		return fmt.Errorf("snapshot_keep must be at least 1, got %d", c.SnapshotKeep)
	}
	return nil
}
