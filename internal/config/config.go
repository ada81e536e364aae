// Package config provides configuration for the bitmato server and tools.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Config holds all program configuration.
// The sub-configs are persisted as TOML tables; the writers are runtime only.
type Config struct {
	Verbosity int `toml:"verbosity"` // 0=errors only, 1=sessions, 2=every command

	Server *ServerConfig `toml:"server"`
	Client *ClientConfig `toml:"client"`
	Rules  *RulesConfig  `toml:"rules"`

	// Output streams
	OutputFile io.Writer `toml:"-"`
	LogFile    io.Writer `toml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Server:     NewServerConfig(),
		Client:     NewClientConfig(),
		Rules:      NewRulesConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the diagnostics stream.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section and returns the first problem found,
// wrapping errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d not in 0..2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Server == nil || c.Client == nil || c.Rules == nil {
		return fmt.Errorf("missing section: %w", errors.ErrInvalidConfig)
	}
	if err := c.Server.Validate(); err != nil {
		return errors.Wrap(err, "server")
	}
	if err := c.Client.Validate(); err != nil {
		return errors.Wrap(err, "client")
	}
	if err := c.Rules.Validate(); err != nil {
		return errors.Wrap(err, "rules")
	}
	return nil
}

// EngineRules converts the rules section into engine rules.
func (c *Config) EngineRules() (engine.Rules, error) {
	return c.Rules.EngineRules()
}
