package session

import (
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

func mv(t *testing.T, s string) chess.Move {
	return testutil.MustParseMove(t, s)
}

func TestMatch_Play(t *testing.T) {
	m := NewMatch("m1", "w", "b", engine.DefaultRules())
	testutil.AssertEqual(t, m.Notation(), engine.DefaultNotation)

	testutil.AssertNoError(t, m.Play("w", mv(t, "4:6:4:4")))
	testutil.AssertNoError(t, m.Play("b", mv(t, "4:1:4:3")))

	ply, last, ok := m.LastMove()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, ply, 2)
	testutil.AssertEqual(t, last.String(), "4:1:4:3")

	info := m.Info()
	testutil.AssertEqual(t, info.Plies, 2)
	testutil.AssertEqual(t, info.Turn, "White")
	testutil.AssertEqual(t, info.Notation, "rnbkqbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w")
}

func TestMatch_PlayRejections(t *testing.T) {
	tests := []struct {
		name   string
		player string
		move   string
		want   error
	}{
		{"outsider", "x", "4:6:4:4", errors.ErrNotInMatch},
		{"black on white's turn", "b", "4:1:4:3", errors.ErrNotYourTurn},
		{"white moves black piece", "w", "4:1:4:3", errors.ErrNotYourTurn},
		{"illegal shape", "w", "4:6:4:3", errors.ErrIllegalMove},
		{"empty square", "w", "4:4:4:3", errors.ErrEmptySquare},
		{"off board", "w", "4:6:4:9", errors.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatch("m1", "w", "b", engine.DefaultRules())
			err := m.Play(tt.player, mv(t, tt.move))
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertEqual(t, m.Notation(), engine.DefaultNotation)
			_, _, ok := m.LastMove()
			testutil.AssertFalse(t, ok, "rejected move recorded")
		})
	}
}

func TestMatch_End(t *testing.T) {
	m := NewMatch("m1", "w", "b", engine.DefaultRules())
	testutil.AssertTrue(t, m.End())
	testutil.AssertFalse(t, m.End(), "second End")
	testutil.AssertTrue(t, m.Ended())

	err := m.Play("w", mv(t, "4:6:4:4"))
	testutil.AssertErrorIs(t, err, errors.ErrMatchEnded)
}

func TestMatch_RecordIsCopy(t *testing.T) {
	m := NewMatch("m1", "w", "b", engine.DefaultRules())
	m.Play("w", mv(t, "1:7:2:5"))

	rec := m.Record()
	rec.Add(mv(t, "0:0:0:1"))

	testutil.AssertEqual(t, m.Record().Plies(), 1)
	testutil.AssertEqual(t, rec.Start, engine.DefaultNotation)
}

func TestMatch_TeamOf(t *testing.T) {
	m := NewMatch("m1", "w", "b", engine.DefaultRules())
	testutil.AssertEqual(t, m.TeamOf("w"), chess.White)
	testutil.AssertEqual(t, m.TeamOf("b"), chess.Black)
	testutil.AssertEqual(t, m.TeamOf("z"), chess.NoTeam)
	testutil.AssertEqual(t, m.Opponent("w"), "b")
	testutil.AssertEqual(t, m.Opponent("b"), "w")
}
