// bitmato is a terminal client for a bitmato server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/bitmato-studio/bitmato-chess/internal/client"
	"github.com/bitmato-studio/bitmato-chess/internal/config"
)

const programVersion = "0.1.0"

const banner = `
 _     _ _                  _
| |__ (_) |_ _ __ ___   __ _| |_ ___
| '_ \| | __| '_ ` + "`" + ` _ \ / _` + "`" + ` | __/ _ \
| |_) | | |_| | | | | | (_| | || (_) |
|_.__/|_|\__|_| |_| |_|\__,_|\__\___/
`

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("bitmato version %s\n", programVersion)
		os.Exit(0)
	}
	if *noColor {
		color.NoColor = true
	}

	path := *configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		fatalf("%v", err)
	}
	setupLogFile(cfg)
	logger := log.New(cfg.LogFile, "CLIENT: ", log.LstdFlags)

	in := bufio.NewReader(os.Stdin)
	fmt.Print(banner)

	user, password := "", ""
	if !*guest {
		user = prompt(in, "Enter Username (empty for guest): ", cfg.Client.Username)
		if user != "" {
			password = readPassword(in, "Enter Password: ")
		}
	}
	host := *hostAddr
	if host == "" {
		host = prompt(in, fmt.Sprintf("Enter Server IP/URL [%s]: ", cfg.Client.HostIP), cfg.Client.HostIP)
	}

	c, err := client.Dial(host, cfg.Client.DialTimeout.Duration)
	if err != nil {
		fatalf("connect %s: %v", host, err)
	}
	defer c.Close()
	if err := c.Login(user, password); err != nil {
		fatalf("%v", err)
	}
	logger.Printf("%v", c)

	cfg.Client.HostIP = host
	cfg.Client.UserID = c.UserID
	if user != "" {
		cfg.Client.Username = user
	}
	if err := cfg.Save(path); err != nil {
		logger.Printf("save config: %v", err)
	}

	rules, err := cfg.EngineRules()
	if err != nil {
		fatalf("%v", err)
	}
	p := &player{
		c:      c,
		in:     in,
		out:    cfg.OutputFile,
		logger: logger,
		rules:  rules,
		poll:   cfg.Client.PollInterval.Duration,
	}
	if err := p.run(); err != nil {
		fatalf("%v", err)
	}
	c.Quit()
}

func prompt(in *bufio.Reader, text, def string) string {
	fmt.Print(text)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		fatalf("%v", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(in *bufio.Reader, text string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(in, text, "")
	}
	fmt.Print(text)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		fatalf("%v", err)
	}
	return string(pw)
}

func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		cfg.SetLogFile(io.Discard)
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: log files are user-readable
	if err != nil {
		fatalf("opening log file %s: %v", *logFile, err)
	}
	cfg.SetLogFile(file)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bitmato [options]\n\nOptions:\n")
	flag.PrintDefaults()
}
