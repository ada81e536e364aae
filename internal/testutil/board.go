package testutil

import (
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

// Place puts a fresh piece at (x, y) and returns the board for chaining.
func Place(b *chess.Board, x, y int, kind chess.PieceKind, team chess.Team) *chess.Board {
	b.Place(chess.Pos{X: x, Y: y}, chess.NewPiece(kind, team))
	return b
}

// Occupancy returns the glyph rows of a board, top row first.
func Occupancy(b *chess.Board) []string {
	rows := b.Glyphs()
	return rows[:]
}

// AssertBoard compares a board's glyph rows with want.
func AssertBoard(t testing.TB, b *chess.Board, want []string, msgAndArgs ...any) {
	t.Helper()
	AssertEqual(t, Occupancy(b), want, msgAndArgs...)
}

// MustParseMove parses an "x1:y1:x2:y2" move or fails the test.
func MustParseMove(t testing.TB, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}
