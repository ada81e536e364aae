// Package replay reads and writes game record files and replays them
// through the rule engine.
//
// A record is plain text: optional "# comment" lines, an optional
// "start: <notation>" line, then one "x1:y1:x2:y2" move per line.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Record file conventions.
const (
	CommentPrefix = "#"
	StartPrefix   = "start:"
	Extension     = ".rec"
)

// Parse reads a record. name is used for error messages and the record name.
func Parse(r io.Reader, name string) (*chess.GameRecord, error) {
	rec := chess.NewGameRecord(name, "")
	sc := bufio.NewScanner(r)
	lineNo := 0
	sawStart := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		parseErr := func(expected string) error {
			return &errors.ParseError{
				Err:      errors.ErrInvalidRecord,
				File:     name,
				Line:     lineNo,
				Expected: expected,
				Got:      fmt.Sprintf("%q", line),
			}
		}

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, CommentPrefix):
			rec.Comments = append(rec.Comments, strings.TrimSpace(strings.TrimPrefix(line, CommentPrefix)))

		case strings.HasPrefix(line, StartPrefix):
			if sawStart || rec.Plies() > 0 {
				return nil, parseErr("start line before any move, at most once")
			}
			start := strings.TrimSpace(strings.TrimPrefix(line, StartPrefix))
			if _, err := engine.Decode(start); err != nil {
				return nil, errors.Wrapf(parseErr("valid notation"), "%v", err)
			}
			rec.Start = start
			sawStart = true

		default:
			m, err := chess.ParseMove(line)
			if err != nil {
				return nil, parseErr("move x1:y1:x2:y2")
			}
			rec.Add(m)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return rec, nil
}

// ParseFile reads a record file. The record is named after the file.
func ParseFile(path string) (*chess.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Write writes a record in the format Parse reads.
func Write(w io.Writer, rec *chess.GameRecord) error {
	bw := bufio.NewWriter(w)
	for _, c := range rec.Comments {
		fmt.Fprintf(bw, "%s %s\n", CommentPrefix, c)
	}
	if rec.Start != "" {
		fmt.Fprintf(bw, "%s %s\n", StartPrefix, rec.Start)
	}
	for _, m := range rec.Moves {
		fmt.Fprintln(bw, m.String())
	}
	return bw.Flush()
}

// WriteFile writes a record to dir/<name>.rec and returns the path.
func WriteFile(dir string, rec *chess.GameRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, rec.Name+Extension)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(f, rec); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
