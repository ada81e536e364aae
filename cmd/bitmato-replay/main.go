// bitmato-replay replays match record files through the rule engine and
// reports the final positions and any rejected moves.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/hashing"
	"github.com/bitmato-studio/bitmato-chess/internal/render"
	"github.com/bitmato-studio/bitmato-chess/internal/replay"
	"github.com/bitmato-studio/bitmato-chess/internal/worker"
)

var (
	workers      = flag.Int("j", runtime.NumCPU(), "Number of parallel workers")
	kingRule     = flag.String("king", "bounded", "King movement rule: bounded or legacy")
	forwardPawns = flag.Bool("forward-pawns", false, "Only allow pawns to move toward the enemy")
	showBoard    = flag.Bool("board", false, "Print the final board of each record")
	duplicates   = flag.Bool("D", false, "Report records that end in the same position")
	exactDups    = flag.Bool("exact", false, "With -D, also require the same number of plies")
	verbosity    = flag.Int("v", 1, "Verbosity: 0 totals only, 1 per file, 2 every rejection")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	paths, err := expandArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.NewConfigBuilder().
		WithKingRule(*kingRule).
		WithForwardPawns(*forwardPawns).
		WithVerbosity(*verbosity).
		Build()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules, _ := cfg.EngineRules()

	results := replay.Files(context.Background(), paths, rules, *workers)
	opts := reportOptions{verbosity: cfg.Verbosity, boards: *showBoard}
	if *duplicates {
		opts.dups = hashing.NewSharedDetector(*exactDups, 0)
	}
	if !report(cfg.OutputFile, results, opts) {
		os.Exit(1)
	}
}

// expandArgs replaces directories with the record files they contain.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*"+replay.Extension))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

type reportOptions struct {
	verbosity int
	boards    bool
	dups      *hashing.SharedDetector // nil disables
}

// report prints results and totals. It returns false if any record failed
// to load.
func report(w io.Writer, results []worker.ProcessResult, opts reportOptions) bool {
	p := message.NewPrinter(language.English)

	var applied, rejected, failed int
	for _, r := range results {
		applied += r.Applied
		rejected += len(r.Rejections)

		if r.Error != nil {
			failed++
			p.Fprintf(w, "%s: %v\n", r.Name, r.Error)
			continue
		}
		if opts.verbosity >= 1 {
			p.Fprintf(w, "%s: %d applied, %d rejected, %s\n", r.Name, r.Applied, len(r.Rejections), engine.Encode(r.Board))
		}
		if opts.verbosity >= 2 {
			for _, rej := range r.Rejections {
				p.Fprintf(w, "  %v\n", rej)
			}
		}
		if opts.boards {
			fmt.Fprint(w, render.Text(r.Board))
		}
		if opts.dups != nil {
			if first, dup := opts.dups.CheckAndAdd(r.Name, r.Applied, r.Board); dup {
				p.Fprintf(w, "%s: same final position as %s\n", r.Name, first)
			}
		}
	}

	p.Fprintf(w, "%d records, %d moves applied, %d rejected, %d failed\n", len(results), applied, rejected, failed)
	if opts.dups != nil {
		unique, dups := opts.dups.Counts()
		p.Fprintf(w, "%d unique final positions, %d duplicates\n", unique, dups)
	}
	return failed == 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bitmato-replay [options] file.rec|dir ...\n\nOptions:\n")
	flag.PrintDefaults()
}
