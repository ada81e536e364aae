// flags.go - Command-line flag definitions for the client
package main

import "flag"

var (
	configFile = flag.String("config", "", "TOML config file (default: user config dir)")
	hostAddr   = flag.String("host", "", "Server address, skips the prompt")
	guest      = flag.Bool("guest", false, "Play as a guest, skips the login prompts")
	noColor    = flag.Bool("nocolor", false, "Disable coloured output")
	logFile    = flag.String("l", "", "Write diagnostics to this file")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)
