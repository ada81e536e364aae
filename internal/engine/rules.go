package engine

import (
	"fmt"
	"strings"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// KingRule selects how a king's move shape is judged.
type KingRule int

const (
	// KingBounded allows one step in any direction.
	KingBounded KingRule = iota
	// KingLegacy allows any move with a one-square column or row delta,
	// matching games recorded by older clients.
	KingLegacy
)

// String returns the config spelling of the rule.
func (k KingRule) String() string {
	if k == KingLegacy {
		return "legacy"
	}
	return "bounded"
}

// ParseKingRule parses "bounded" or "legacy"; empty means bounded.
func ParseKingRule(s string) (KingRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounded":
		return KingBounded, nil
	case "legacy":
		return KingLegacy, nil
	default:
		return KingBounded, fmt.Errorf("king rule %q: %w", s, errors.ErrInvalidConfig)
	}
}

// Rules holds the tunable parts of move validation.
// The zero value is the default rule set.
type Rules struct {
	King KingRule

	// ForwardPawns restricts White pawns to moving toward row 0 and Black
	// pawns toward row 7. Off by default: only the delta size is checked.
	ForwardPawns bool

	// AfterMove, if set, runs after every applied move.
	AfterMove func(b *chess.Board, m chess.Move)
}

// DefaultRules returns the default rule set.
func DefaultRules() Rules {
	return Rules{King: KingBounded}
}

// ValidateShape reports whether piece may move from one square to another
// by its movement shape, using the default rules.
func ValidateShape(board *chess.Board, from, to chess.Pos, piece chess.PlacedPiece) bool {
	return DefaultRules().ValidateShape(board, from, to, piece)
}

// ValidateShape reports whether piece may move from one square to another
// by its movement shape. Obstruction is not considered except for the pawn's
// own destination conditions.
func (r Rules) ValidateShape(board *chess.Board, from, to chess.Pos, piece chess.PlacedPiece) bool {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)

	switch piece.Kind {
	case chess.Pawn:
		return r.validatePawn(board, from, to, piece)

	case chess.Rook:
		return isStraight(dx, dy)

	case chess.Bishop:
		return isDiagonal(dx, dy)

	case chess.Knight:
		return (dx == 2 && dy == 1) || (dx == 1 && dy == 2)

	case chess.Queen:
		return isStraight(dx, dy) || isDiagonal(dx, dy)

	case chess.King:
		if r.King == KingLegacy {
			return dx == 1 || dy == 1
		}
		return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
	}

	return false
}

// validatePawn handles the straight push, the first-move double push and
// the diagonal capture.
func (r Rules) validatePawn(board *chess.Board, from, to chess.Pos, piece chess.PlacedPiece) bool {
	if r.ForwardPawns && !isForward(piece.Team, to.Y-from.Y) {
		return false
	}

	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	target, occupied := board.EntityAt(to)

	if dx == 0 && (dy == 1 || (dy == 2 && !piece.HasMoved)) {
		return !occupied
	}
	if dx == 1 && dy == 1 {
		return occupied && target.Team == piece.Team.Opposite()
	}
	return false
}

// isForward reports whether a row delta points toward the opponent's side.
func isForward(team chess.Team, deltaY int) bool {
	if team == chess.White {
		return deltaY < 0
	}
	return deltaY > 0
}

func isStraight(dx, dy int) bool {
	return (dx == 0) != (dy == 0)
}

func isDiagonal(dx, dy int) bool {
	return dx == dy && dx != 0
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
