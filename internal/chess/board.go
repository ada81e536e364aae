package chess

import "fmt"

// Cell is one board square.
// The glyph is a cache of the occupant's notation character; Place and
// Clear are the only mutators and keep all three fields consistent.
type Cell struct {
	occupied bool
	piece    PlacedPiece
	glyph    byte
}

// EmptyCell returns an unoccupied cell.
func EmptyCell() Cell {
	return Cell{glyph: EmptyGlyph}
}

// Occupied reports whether a piece stands on the cell.
func (c *Cell) Occupied() bool {
	return c.occupied
}

// Piece returns the occupant and whether there is one.
func (c *Cell) Piece() (PlacedPiece, bool) {
	return c.piece, c.occupied
}

// Glyph returns '1' for an empty cell, otherwise the occupant's letter.
func (c *Cell) Glyph() byte {
	if c.glyph == 0 {
		return EmptyGlyph
	}
	return c.glyph
}

// Place puts p on the cell, replacing any previous occupant.
func (c *Cell) Place(p PlacedPiece) {
	c.occupied = true
	c.piece = p
	c.glyph = p.Glyph()
}

// Clear empties the cell and returns the previous occupant, if any.
func (c *Cell) Clear() (PlacedPiece, bool) {
	last, had := c.piece, c.occupied
	c.occupied = false
	c.piece = PlacedPiece{}
	c.glyph = EmptyGlyph
	return last, had
}

// Board represents a chess board with the state needed for play.
// The cell array is indexed [y][x], so a board is always exactly 8x8.
type Board struct {
	cells [BoardSize][BoardSize]Cell

	// Who has the next move. White or Black once constructed.
	Turn Team

	// Check state. Present for callers; nothing in the rule engine sets it.
	IsCheck    bool
	WhoInCheck Team
}

// NewBoard creates an empty board with White to move.
func NewBoard() *Board {
	b := &Board{Turn: White, WhoInCheck: NoTeam}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			b.cells[y][x] = EmptyCell()
		}
	}
	return b
}

// At returns the cell at pos.
// It panics if pos is off the board; callers handling untrusted
// coordinates must check Pos.InBounds first.
func (b *Board) At(pos Pos) *Cell {
	if !pos.InBounds() {
		panic(fmt.Sprintf("chess: position %v out of range", pos))
	}
	return &b.cells[pos.Y][pos.X]
}

// EntityAt returns the piece at pos and whether the square is occupied.
func (b *Board) EntityAt(pos Pos) (PlacedPiece, bool) {
	return b.At(pos).Piece()
}

// Place puts a piece on pos.
func (b *Board) Place(pos Pos, p PlacedPiece) {
	b.At(pos).Place(p)
}

// Clear empties pos and returns the previous occupant, if any.
func (b *Board) Clear(pos Pos) (PlacedPiece, bool) {
	return b.At(pos).Clear()
}

// FlipTurn hands the move to the other side.
func (b *Board) FlipTurn() {
	b.Turn = b.Turn.Opposite()
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// Pieces returns the number of pieces of the given team on the board.
// NoTeam counts every piece.
func (b *Board) Pieces(team Team) int {
	n := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			c := &b.cells[y][x]
			if c.occupied && (team == NoTeam || c.piece.Team == team) {
				n++
			}
		}
	}
	return n
}

// Glyphs returns the glyph grid, row by row. Useful for comparisons.
func (b *Board) Glyphs() [BoardSize]string {
	var rows [BoardSize]string
	for y := 0; y < BoardSize; y++ {
		row := make([]byte, BoardSize)
		for x := 0; x < BoardSize; x++ {
			row[x] = b.cells[y][x].Glyph()
		}
		rows[y] = string(row)
	}
	return rows
}
