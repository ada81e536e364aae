package main

import (
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

func TestParseMoveInput(t *testing.T) {
	want := chess.Move{From: chess.Pos{X: 4, Y: 6}, To: chess.Pos{X: 4, Y: 4}}

	for _, in := range []string{"4 6 4 4", "4:6:4:4", " 4, 6, 4, 4 ", "4\t6 4 4"} {
		t.Run(in, func(t *testing.T) {
			got, err := parseMoveInput(in)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, want)
		})
	}

	for _, in := range []string{"", "4 6 4", "e2 e4", "4 6 4 4 4"} {
		t.Run("bad "+in, func(t *testing.T) {
			_, err := parseMoveInput(in)
			testutil.AssertError(t, err)
		})
	}
}

func TestMarkMovedPawns(t *testing.T) {
	b, err := engine.Decode("rnbkqbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w")
	testutil.AssertNoError(t, err)
	markMovedPawns(b)

	moved := func(x, y int) bool {
		pc, ok := b.EntityAt(chess.Pos{X: x, Y: y})
		testutil.AssertTrue(t, ok)
		return pc.HasMoved
	}
	testutil.AssertTrue(t, moved(4, 4), "white pawn off home row")
	testutil.AssertTrue(t, moved(3, 3), "black pawn off home row")
	testutil.AssertFalse(t, moved(0, 6), "white pawn at home")
	testutil.AssertFalse(t, moved(0, 1), "black pawn at home")
	testutil.AssertFalse(t, moved(0, 7), "rook")

	// The server refuses a second double step; so does the local board now.
	testutil.AssertFalse(t, engine.DefaultRules().ApplyMove(b, chess.Pos{X: 4, Y: 4}, chess.Pos{X: 4, Y: 2}))
}
