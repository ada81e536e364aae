package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithTCPAddr sets the line-protocol listen address.
func (b *ConfigBuilder) WithTCPAddr(addr string) *ConfigBuilder {
	b.cfg.Server.TCPAddr = addr
	return b
}

// WithHTTPAddr sets the status/websocket listen address; "" disables it.
func (b *ConfigBuilder) WithHTTPAddr(addr string) *ConfigBuilder {
	b.cfg.Server.HTTPAddr = addr
	return b
}

// WithSSHAddr sets the spectator listen address; "" disables it.
func (b *ConfigBuilder) WithSSHAddr(addr string) *ConfigBuilder {
	b.cfg.Server.SSHAddr = addr
	return b
}

// WithIdleTimeout sets the session idle timeout.
func (b *ConfigBuilder) WithIdleTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.IdleTimeout = Duration{d}
	return b
}

// WithRecordDir sets where ended matches are recorded.
func (b *ConfigBuilder) WithRecordDir(dir string) *ConfigBuilder {
	b.cfg.Server.RecordDir = dir
	return b
}

// WithHost sets the client's server address.
func (b *ConfigBuilder) WithHost(addr string) *ConfigBuilder {
	b.cfg.Client.HostIP = addr
	return b
}

// WithKingRule sets the king rule by name.
func (b *ConfigBuilder) WithKingRule(rule string) *ConfigBuilder {
	b.cfg.Rules.King = rule
	return b
}

// WithForwardPawns sets pawn direction enforcement.
func (b *ConfigBuilder) WithForwardPawns(enabled bool) *ConfigBuilder {
	b.cfg.Rules.ForwardPawns = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostics writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
