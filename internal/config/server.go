package config

import (
	"fmt"
	"net"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// ServerConfig holds settings for the session server and its listeners.
type ServerConfig struct {
	// TCPAddr is the line-protocol listen address.
	TCPAddr string `toml:"tcp_addr"`

	// HTTPAddr serves the status API and the websocket transport.
	// Empty disables it.
	HTTPAddr string `toml:"http_addr"`

	// SSHAddr serves the read-only spectator. Empty disables it.
	SSHAddr string `toml:"ssh_addr"`

	// HostKeyFile is a PEM private key for the spectator. Empty means an
	// ephemeral key generated at startup.
	HostKeyFile string `toml:"host_key_file"`

	// IdleTimeout closes sessions that send nothing for this long.
	IdleTimeout Duration `toml:"idle_timeout"`

	// MaxLineBytes caps a single protocol line.
	MaxLineBytes int `toml:"max_line_bytes"`

	// RecordDir receives a record file for every ended match. Empty
	// disables recording.
	RecordDir string `toml:"record_dir"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		TCPAddr:      ":7878",
		HTTPAddr:     ":8080",
		SSHAddr:      ":2222",
		IdleTimeout:  Duration{10 * time.Minute},
		MaxLineBytes: 4096,
	}
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.TCPAddr == "" {
		return fmt.Errorf("tcp_addr is required: %w", errors.ErrInvalidConfig)
	}
	for name, addr := range map[string]string{"tcp_addr": c.TCPAddr, "http_addr": c.HTTPAddr, "ssh_addr": c.SSHAddr} {
		if addr == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%s %q: %v: %w", name, addr, err, errors.ErrInvalidConfig)
		}
	}
	if c.IdleTimeout.Duration <= 0 {
		return fmt.Errorf("idle_timeout must be positive: %w", errors.ErrInvalidConfig)
	}
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}
