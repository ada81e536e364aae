// flags.go - Command-line flag definitions for the server
package main

import (
	"flag"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
)

var (
	configFile = flag.String("config", "", "TOML config file")

	// Listeners; "-" disables the HTTP and SSH listeners
	tcpAddr  = flag.String("tcp", "", "Line protocol listen address (default :7878)")
	httpAddr = flag.String("http", "", "HTTP status and websocket listen address (default :8080)")
	sshAddr  = flag.String("ssh", "", "SSH spectator listen address (default :2222)")
	hostKey  = flag.String("hostkey", "", "SSH host key file (default: ephemeral key)")

	// Matches
	recordDir    = flag.String("records", "", "Directory for finished match records")
	kingRule     = flag.String("king", "", "King movement rule: bounded or legacy")
	forwardPawns = flag.Bool("forward-pawns", false, "Only allow pawns to move toward the enemy")

	// Diagnostics
	verbosity = flag.Int("v", 1, "Verbosity: 0 errors, 1 sessions, 2 every command")
	logFile   = flag.String("l", "", "Write the log to this file (default: stderr)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// setFlags returns the names of flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags overrides config file values with flags that were given.
func applyFlags(cfg *config.Config, set map[string]bool) {
	applyListenerFlags(cfg, set)
	applyRuleFlags(cfg, set)

	if set["v"] {
		cfg.Verbosity = *verbosity
	}
}

// applyListenerFlags configures listen addresses and recording.
func applyListenerFlags(cfg *config.Config, set map[string]bool) {
	if set["tcp"] {
		cfg.Server.TCPAddr = *tcpAddr
	}
	if set["http"] {
		cfg.Server.HTTPAddr = disabled(*httpAddr)
	}
	if set["ssh"] {
		cfg.Server.SSHAddr = disabled(*sshAddr)
	}
	if set["hostkey"] {
		cfg.Server.HostKeyFile = *hostKey
	}
	if set["records"] {
		cfg.Server.RecordDir = *recordDir
	}
}

// applyRuleFlags configures the rule variant.
func applyRuleFlags(cfg *config.Config, set map[string]bool) {
	if set["king"] {
		cfg.Rules.King = *kingRule
	}
	if set["forward-pawns"] {
		cfg.Rules.ForwardPawns = *forwardPawns
	}
}

func disabled(addr string) string {
	if addr == "-" {
		return ""
	}
	return addr
}
