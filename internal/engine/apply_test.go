package engine

import (
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

func pos(x, y int) chess.Pos { return chess.Pos{X: x, Y: y} }

func TestApplyMove_DefaultPositionScenario(t *testing.T) {
	b := NewDefaultBoard()

	if !ApplyMove(b, pos(0, 6), pos(0, 4)) {
		t.Fatal("white pawn double step rejected")
	}
	if b.Turn != chess.Black {
		t.Fatalf("Turn = %v after legal move, want Black", b.Turn)
	}

	before := testutil.Occupancy(b)
	if ApplyMove(b, pos(0, 1), pos(0, 6)) {
		t.Fatal("black pawn five-rank jump accepted")
	}
	if b.Turn != chess.Black {
		t.Errorf("Turn = %v after rejected move, want Black", b.Turn)
	}
	testutil.AssertBoard(t, b, before, "board changed by rejected move")
}

func TestApplyMove_BishopBlockedByFriend(t *testing.T) {
	b := chess.NewBoard()
	testutil.Place(b, 2, 5, chess.Bishop, chess.White)
	testutil.Place(b, 3, 4, chess.Pawn, chess.White)
	testutil.Place(b, 4, 3, chess.Knight, chess.Black)
	before := testutil.Occupancy(b)

	err := Move(b, pos(2, 5), pos(4, 3))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)

	var me *errors.MoveError
	if !errors.As(err, &me) {
		t.Fatalf("error %v is not a *MoveError", err)
	}
	testutil.AssertEqual(t, me.Reason, reasonBlocked)
	testutil.AssertEqual(t, me.Piece, "White Bishop")

	testutil.AssertBoard(t, b, before)
	testutil.AssertEqual(t, b.Turn, chess.White)
}

func TestApplyMove_KnightIgnoresBlockers(t *testing.T) {
	b := NewDefaultBoard()

	if !ApplyMove(b, pos(1, 7), pos(2, 5)) {
		t.Fatal("knight jump over own pawns rejected")
	}
	if !ApplyMove(b, pos(6, 0), pos(5, 2)) {
		t.Fatal("black knight jump rejected")
	}
	p, _ := b.EntityAt(pos(2, 5))
	testutil.AssertEqual(t, p, chess.PlacedPiece{Kind: chess.Knight, Team: chess.White, HasMoved: true})
}

func TestApplyMove_KnightOntoOwnPiece(t *testing.T) {
	b := NewDefaultBoard()
	err := Move(b, pos(1, 7), pos(3, 6))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertEqual(t, b.Turn, chess.White)
}

func TestApplyMove_RookBlockedAndUnblocked(t *testing.T) {
	b := chess.NewBoard()
	testutil.Place(b, 0, 7, chess.Rook, chess.White)
	testutil.Place(b, 0, 5, chess.Pawn, chess.Black)

	if ApplyMove(b, pos(0, 7), pos(0, 2)) {
		t.Fatal("rook passed through a piece")
	}

	b.Clear(pos(0, 5))
	if !ApplyMove(b, pos(0, 7), pos(0, 2)) {
		t.Fatal("rook on a clear file rejected")
	}
}

func TestApplyMove_PawnDoubleStep(t *testing.T) {
	b := NewDefaultBoard()

	if !ApplyMove(b, pos(4, 6), pos(4, 4)) {
		t.Fatal("first double step rejected")
	}
	b.Turn = chess.White
	if ApplyMove(b, pos(4, 4), pos(4, 2)) {
		t.Fatal("second double step accepted")
	}
	if !ApplyMove(b, pos(4, 4), pos(4, 3)) {
		t.Fatal("single step after moving rejected")
	}
}

func TestApplyMove_PawnDoubleStepThroughPiece(t *testing.T) {
	b := NewDefaultBoard()
	testutil.Place(b, 4, 5, chess.Knight, chess.Black)

	err := Move(b, pos(4, 6), pos(4, 4))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestApplyMove_Capture(t *testing.T) {
	b := chess.NewBoard()
	testutil.Place(b, 0, 0, chess.Queen, chess.White)
	testutil.Place(b, 7, 0, chess.Rook, chess.Black)

	if !ApplyMove(b, pos(0, 0), pos(7, 0)) {
		t.Fatal("horizontal queen capture rejected")
	}
	p, _ := b.EntityAt(pos(7, 0))
	testutil.AssertEqual(t, p.Kind, chess.Queen)
	testutil.AssertEqual(t, b.Pieces(chess.Black), 0)
	testutil.AssertFalse(t, b.At(pos(0, 0)).Occupied(), "origin still occupied")
}

func TestMove_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		from, to chess.Pos
		want     error
	}{
		{"origin off board", pos(-1, 0), pos(0, 0), errors.ErrOutOfRange},
		{"destination off board", pos(0, 0), pos(8, 0), errors.ErrOutOfRange},
		{"far off board", pos(100, 100), pos(0, 0), errors.ErrOutOfRange},
		{"empty origin", pos(4, 4), pos(4, 3), errors.ErrEmptySquare},
		{"bad shape", pos(3, 7), pos(5, 4), errors.ErrIllegalMove},
		{"own piece on destination", pos(0, 7), pos(0, 6), errors.ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewDefaultBoard()
			before := testutil.Occupancy(b)

			err := Move(b, tt.from, tt.to)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertFalse(t, ApplyMove(b, tt.from, tt.to), "ApplyMove")
			testutil.AssertBoard(t, b, before)
			testutil.AssertEqual(t, b.Turn, chess.White)
		})
	}
}

// Turn ownership is left to callers.
func TestApplyMove_DoesNotCheckTurnOwner(t *testing.T) {
	b := NewDefaultBoard()
	if !ApplyMove(b, pos(0, 1), pos(0, 3)) {
		t.Fatal("black move on white's turn rejected")
	}
	testutil.AssertEqual(t, b.Turn, chess.Black)
}

func TestRules_AfterMove(t *testing.T) {
	var seen []chess.Move
	r := DefaultRules()
	r.AfterMove = func(_ *chess.Board, m chess.Move) { seen = append(seen, m) }

	b := NewDefaultBoard()
	r.ApplyMove(b, pos(0, 6), pos(0, 4))
	r.ApplyMove(b, pos(0, 1), pos(0, 6)) // rejected

	testutil.AssertEqual(t, seen, []chess.Move{{From: pos(0, 6), To: pos(0, 4)}})
}

func TestRules_KingRuleThroughMove(t *testing.T) {
	setup := func() *chess.Board {
		b := chess.NewBoard()
		return testutil.Place(b, 4, 7, chess.King, chess.White)
	}

	testutil.AssertFalse(t, DefaultRules().ApplyMove(setup(), pos(4, 7), pos(6, 6)), "bounded")
	testutil.AssertTrue(t, Rules{King: KingLegacy}.ApplyMove(setup(), pos(4, 7), pos(6, 6)), "legacy")
}

func TestApplyMove_LegacyKingOffLine(t *testing.T) {
	legacy := Rules{King: KingLegacy}

	b := chess.NewBoard()
	testutil.Place(b, 4, 7, chess.King, chess.White)
	testutil.Place(b, 4, 3, chess.Pawn, chess.White) // in the way of a straight walk
	testutil.AssertTrue(t, legacy.ApplyMove(b, pos(4, 7), pos(5, 0)), "dx=1 dy=7")

	p, ok := b.EntityAt(pos(5, 0))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, p.Kind, chess.King)
	testutil.AssertFalse(t, b.At(pos(4, 7)).Occupied())
	testutil.AssertEqual(t, b.Turn, chess.Black)

	b = chess.NewBoard()
	testutil.Place(b, 4, 7, chess.King, chess.White)
	testutil.Place(b, 5, 0, chess.Rook, chess.White)
	testutil.AssertFalse(t, legacy.ApplyMove(b, pos(4, 7), pos(5, 0)), "own piece on destination")

	b = chess.NewBoard()
	testutil.Place(b, 4, 7, chess.King, chess.White)
	testutil.AssertFalse(t, DefaultRules().ApplyMove(b, pos(4, 7), pos(5, 0)), "bounded")
}

func TestApplyMove_SetsHasMoved(t *testing.T) {
	b := NewDefaultBoard()
	ApplyMove(b, pos(3, 6), pos(3, 5))
	p, ok := b.EntityAt(pos(3, 5))
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, p.HasMoved)
}
