package engine

import (
	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Move validates and applies a move with the default rules.
// See Rules.Move.
func Move(board *chess.Board, from, to chess.Pos) error {
	return DefaultRules().Move(board, from, to)
}

// ApplyMove validates and applies a move with the default rules and reports
// whether it was applied.
func ApplyMove(board *chess.Board, from, to chess.Pos) bool {
	return DefaultRules().ApplyMove(board, from, to)
}

// ApplyMove reports whether the move was applied. See Move.
func (r Rules) ApplyMove(board *chess.Board, from, to chess.Pos) bool {
	return r.Move(board, from, to) == nil
}

// Move validates a move and applies it: the piece is marked as moved,
// relocated, and the turn passes to the other side.
// A rejected move leaves the board untouched and returns a *errors.MoveError
// wrapping ErrOutOfRange, ErrEmptySquare or ErrIllegalMove.
//
// The mover's team is not checked against board.Turn; callers that need
// turn ownership enforce it themselves.
func (r Rules) Move(board *chess.Board, from, to chess.Pos) error {
	if !from.InBounds() || !to.InBounds() {
		return &errors.MoveError{
			Err:  errors.ErrOutOfRange,
			From: from.String(),
			To:   to.String(),
		}
	}

	piece, ok := board.EntityAt(from)
	if !ok {
		return &errors.MoveError{
			Err:  errors.ErrEmptySquare,
			From: from.String(),
			To:   to.String(),
		}
	}

	if reason := r.check(board, from, to, piece); reason != "" {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   from.String(),
			To:     to.String(),
			Piece:  piece.String(),
			Reason: reason,
		}
	}

	piece.HasMoved = true
	board.Place(to, piece)
	board.Clear(from)
	board.FlipTurn()

	if r.AfterMove != nil {
		r.AfterMove(board, chess.Move{From: from, To: to})
	}
	return nil
}

// check returns "" when the move is legal, otherwise the reason it is not.
func (r Rules) check(board *chess.Board, from, to chess.Pos, piece chess.PlacedPiece) string {
	if !r.ValidateShape(board, from, to, piece) {
		return "bad " + piece.Kind.String() + " move"
	}
	// Knights jump, and so do legacy king moves off any line; only the
	// destination matters.
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if piece.Kind == chess.Knight || (!isStraight(dx, dy) && !isDiagonal(dx, dy)) {
		return checkDestination(board, piece, to)
	}
	return checkPath(board, from, to)
}
