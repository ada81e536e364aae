// Package chess provides the board data model shared by the rule engine,
// the session server and the clients.
package chess

import "fmt"

// Team identifies the side a piece belongs to.
type Team int

const (
	NoTeam Team = iota // Sentinel for "no one"; never assigned to a piece.
	White
	Black
)

// String returns the string representation of a team.
func (t Team) String() string {
	switch t {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Opposite returns the opposing team. NoTeam has no opposite.
func (t Team) Opposite() Team {
	switch t {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoTeam
	}
}

// PieceKind represents a chess piece type.
type PieceKind int

const (
	NotSet PieceKind = iota // Empty or uninitialised slot; never movable.
	Pawn
	Rook
	Bishop
	Knight
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"NotSet", "Pawn", "Rook", "Bishop", "Knight", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the lowercase notation letter of a piece kind, or 0 for NotSet.
func (k PieceKind) Letter() byte {
	switch k {
	case Pawn:
		return 'p'
	case Rook:
		return 'r'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return 0
	}
}

// KindFromLetter converts a notation letter (either case) to a piece kind.
// Unknown letters yield NotSet.
func KindFromLetter(c byte) PieceKind {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'r', 'R':
		return Rook
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NotSet
	}
}

// Constants for board dimensions and notation glyphs.
const (
	BoardSize  = 8
	EmptyGlyph = '1'
)

// Pos is a board coordinate: X is the column, Y the row, both 0-indexed.
// Row 0 is the first row of the notation string.
// Pos is also used for move deltas, so it is signed.
type Pos struct {
	X int
	Y int
}

// InBounds reports whether p lies on the 8x8 board.
func (p Pos) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Sub returns the component-wise difference p - q.
func (p Pos) Sub(q Pos) Pos {
	return Pos{X: p.X - q.X, Y: p.Y - q.Y}
}

// String formats p as "(x,y)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PlacedPiece is a piece standing on the board.
// Equality is structural: kind, team and HasMoved are all compared.
type PlacedPiece struct {
	Kind     PieceKind
	Team     Team
	HasMoved bool
}

// NewPiece creates a piece that has not moved yet.
func NewPiece(kind PieceKind, team Team) PlacedPiece {
	return PlacedPiece{Kind: kind, Team: team}
}

// Glyph returns the notation character of the piece: uppercase for White,
// lowercase for Black.
func (p PlacedPiece) Glyph() byte {
	letter := p.Kind.Letter()
	if letter == 0 {
		return EmptyGlyph
	}
	if p.Team == White {
		return letter - ('a' - 'A')
	}
	return letter
}

// String returns e.g. "White Knight".
func (p PlacedPiece) String() string {
	return p.Team.String() + " " + p.Kind.String()
}
