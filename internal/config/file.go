package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, errors.ErrInvalidConfig)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads a TOML config file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %v: %w", path, err, errors.ErrInvalidConfig)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load %s: unknown keys %s: %w", path, strings.Join(keys, ", "), errors.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

// LoadOrDefault is like Load but returns the defaults when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return NewConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return NewConfig(), nil
	}
	return Load(path)
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "save %s", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return f.Close()
}

// DefaultPath returns the per-user config location,
// e.g. ~/.config/bitmato/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bitmato.toml"
	}
	return filepath.Join(dir, "bitmato", "config.toml")
}
