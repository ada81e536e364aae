// Package errors provides sentinel errors and error types for the chess
// engine and its session service. Structured error types preserve context
// while allowing inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidNotation indicates a malformed position notation string.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrIllegalMove indicates a move that violates the movement rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrEmptySquare indicates a move from a square with no piece on it.
	ErrEmptySquare = errors.New("no piece on origin square")

	// ErrOutOfRange indicates a coordinate off the 8x8 board.
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrProtocol indicates a malformed or unexpected protocol line.
	ErrProtocol = errors.New("protocol error")

	// ErrAuth indicates a rejected login.
	ErrAuth = errors.New("authentication failed")

	// ErrNotInMatch indicates a match command from a player with no match.
	ErrNotInMatch = errors.New("not in a match")

	// ErrNotYourTurn indicates a move submitted out of turn or with the
	// opponent's piece.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrMatchEnded indicates a command against a finished match.
	ErrMatchEnded = errors.New("match ended")

	// ErrInvalidRecord indicates a malformed game record file.
	ErrInvalidRecord = errors.New("invalid game record")
)

// MoveError wraps a rejected move with its coordinates and the piece that
// tried to make it.
type MoveError struct {
	Err    error  // The underlying error
	From   string // Origin square, formatted "(x,y)"
	To     string // Destination square
	Piece  string // Moving piece, e.g. "White Rook" (if any)
	Reason string // Short human-readable reason
	Ply    int    // 1-based ply in a record (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Piece != "" {
		parts = append(parts, e.Piece)
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("%s->%s", e.From, e.To))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with location context.
// It's used for notation, protocol and record parsing errors.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name (records only)
	Line     int    // Line number (1-based, records only)
	Row      int    // Notation row (1-based, 0 if not applicable)
	Column   int    // Column within the row or line (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, loc)
	}
	if e.Row > 0 {
		loc := fmt.Sprintf("row %d", e.Row)
		if e.Column > 0 {
			loc += fmt.Sprintf(" col %d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is re-exports the standard errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
