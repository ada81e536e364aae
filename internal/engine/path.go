package engine

import "github.com/bitmato-studio/bitmato-chess/internal/chess"

// Reasons reported for rejected paths.
const (
	reasonBlocked     = "path blocked"
	reasonOwnPiece    = "own piece on destination"
	reasonNotALine    = "squares not on a shared line"
	reasonNoMovePiece = "no piece on origin"
)

// ValidatePath reports whether a sliding move from one square to another is
// unobstructed. Every square strictly between the two must be empty, and the
// destination must not hold a piece of the mover's team. The squares must
// share a row, column or diagonal. Both must be on the board.
func ValidatePath(board *chess.Board, from, to chess.Pos) bool {
	return checkPath(board, from, to) == ""
}

// checkPath returns "" for a clear path, otherwise the reason it is not.
func checkPath(board *chess.Board, from, to chess.Pos) string {
	mover, ok := board.EntityAt(from)
	if !ok {
		return reasonNoMovePiece
	}

	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)

	if !isStraight(dx, dy) && !isDiagonal(dx, dy) {
		return reasonNotALine
	}
	if !isLineClear(board, from, to) {
		return reasonBlocked
	}

	return checkDestination(board, mover, to)
}

// checkDestination rejects a destination holding a piece of the mover's team.
func checkDestination(board *chess.Board, mover chess.PlacedPiece, to chess.Pos) string {
	if target, ok := board.EntityAt(to); ok && target.Team == mover.Team {
		return reasonOwnPiece
	}
	return ""
}

// isLineClear walks from one square toward another in unit steps, checking
// every square strictly between them.
func isLineClear(board *chess.Board, from, to chess.Pos) bool {
	stepX := sign(to.X - from.X)
	stepY := sign(to.Y - from.Y)

	p := chess.Pos{X: from.X + stepX, Y: from.Y + stepY}
	for p != to {
		if board.At(p).Occupied() {
			return false
		}
		p = chess.Pos{X: p.X + stepX, Y: p.Y + stepY}
	}

	return true
}
