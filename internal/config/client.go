package config

import (
	"fmt"
	"net"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	// HostIP is the server's host:port.
	HostIP string `toml:"host_ip"`

	// UserID is the id handed out at the last successful login.
	UserID string `toml:"user_id"`

	// Username pre-fills the login prompt.
	Username string `toml:"username"`

	DialTimeout  Duration `toml:"dial_timeout"`
	PollInterval Duration `toml:"poll_interval"`

	// Color enables the coloured board.
	Color bool `toml:"color"`
}

// NewClientConfig creates a ClientConfig with default values.
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		HostIP:       "127.0.0.1:7878",
		DialTimeout:  Duration{5 * time.Second},
		PollInterval: Duration{time.Second},
		Color:        true,
	}
}

// Validate checks the client settings.
func (c *ClientConfig) Validate() error {
	if _, _, err := net.SplitHostPort(c.HostIP); err != nil {
		return fmt.Errorf("host_ip %q: %v: %w", c.HostIP, err, errors.ErrInvalidConfig)
	}
	if c.DialTimeout.Duration <= 0 {
		return fmt.Errorf("dial_timeout must be positive: %w", errors.ErrInvalidConfig)
	}
	if c.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll_interval must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}
