package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultSeekStep = 10 * time.Second

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // folders scanned for episodes
	Notifications  *bool    `koanf:"notifications"`   // desktop notification on episode change (default: true)
	MPRIS          *bool    `koanf:"mpris"`           // expose the player over D-Bus (default: true)
	SeekStep       string   `koanf:"seek_step"`       // e.g. "10s", "30s"

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
	File  string `koanf:"file"`  // "" = default state file, "-" = stderr
}

// Load reads the config files in priority order. An explicit path, when
// given, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load %s", path)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load %s", explicit)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	if cfg.Log.File != "" && cfg.Log.File != "-" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/podwaves/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "podwaves", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled returns true unless notifications are turned off.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled returns true unless MPRIS is turned off.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// GetSeekStep returns the seek step, falling back to 10s on empty or
// invalid values.
func (c *Config) GetSeekStep() time.Duration {
	d, err := time.ParseDuration(c.SeekStep)
	if err != nil || d <= 0 {
		return defaultSeekStep
	}
	return d
}
