// bitmato-server hosts matches over TCP, websocket and a read-only SSH view.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
	"github.com/bitmato-studio/bitmato-chess/internal/httpx"
	"github.com/bitmato-studio/bitmato-chess/internal/session"
	"github.com/bitmato-studio/bitmato-chess/internal/spectate"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("bitmato-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, setFlags(flag.CommandLine))
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts every configured listener and blocks until ctx is cancelled
// or one of them fails.
func run(ctx context.Context, cfg *config.Config) error {
	rules, err := cfg.EngineRules()
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogFile, "SERVER: ", log.LstdFlags)
	lobby := session.NewLobby(
		session.WithRules(rules),
		session.WithRecordDir(cfg.Server.RecordDir),
		session.WithLogger(logger, cfg.Verbosity),
	)
	logger.Printf("bitmato-server %s, king rule %s", programVersion, rules.King)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var listeners []func() error
	listeners = append(listeners, func() error {
		return session.NewServer(lobby, cfg.Server).ListenAndServe(ctx, cfg.Server.TCPAddr)
	})
	if cfg.Server.HTTPAddr != "" {
		web := httpx.New(lobby, cfg.Server, log.New(cfg.LogFile, "HTTP: ", log.LstdFlags))
		listeners = append(listeners, func() error {
			return web.ListenAndServe(ctx, cfg.Server.HTTPAddr)
		})
	}
	if cfg.Server.SSHAddr != "" {
		view, err := spectate.New(lobby, cfg.Server, log.New(cfg.LogFile, "SSH: ", log.LstdFlags))
		if err != nil {
			return err
		}
		listeners = append(listeners, func() error {
			return view.ListenAndServe(ctx, cfg.Server.SSHAddr)
		})
	}

	errc := make(chan error, len(listeners))
	for _, serve := range listeners {
		go func(serve func() error) { errc <- serve() }(serve)
	}

	var first error
	for range listeners {
		if err := <-errc; err != nil && first == nil {
			first = err
			cancel()
		}
	}
	logger.Printf("stopped")
	return first
}

// setupLogFile redirects the log when -l is given.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: log files are user-readable
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLogFile(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bitmato-server [options]\n\nOptions:\n")
	flag.PrintDefaults()
}
