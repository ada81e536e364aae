package client

import (
	"fmt"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Game is the local view of a match from one player's side.
type Game struct {
	Board *chess.Board
	Team  chess.Team
	Rules engine.Rules

	selected chess.Pos
	hasSel   bool
	applied  int
}

// NewGame starts a local board from the default position.
func NewGame(team chess.Team, rules engine.Rules) *Game {
	return &Game{
		Board: engine.NewDefaultBoard(),
		Team:  team,
		Rules: rules,
	}
}

// MyTurn reports whether the local player is to move.
func (g *Game) MyTurn() bool {
	return g.Board.Turn == g.Team
}

// Applied returns how many plies the local board has seen.
func (g *Game) Applied() int {
	return g.applied
}

// Select picks up the piece at p. Only the player's own pieces can be
// selected; anything else clears the selection.
func (g *Game) Select(p chess.Pos) bool {
	g.hasSel = false
	if !p.InBounds() {
		return false
	}
	piece, ok := g.Board.EntityAt(p)
	if !ok || piece.Team != g.Team {
		return false
	}
	g.selected, g.hasSel = p, true
	return true
}

// Selected returns the selected square.
func (g *Game) Selected() (chess.Pos, bool) {
	return g.selected, g.hasSel
}

// Release drops the selected piece on to. The move is checked and applied
// locally; the caller sends the returned move to the server. The selection
// is cleared either way.
func (g *Game) Release(to chess.Pos) (chess.Move, error) {
	from, ok := g.selected, g.hasSel
	g.hasSel = false

	if !ok {
		return chess.Move{}, fmt.Errorf("no piece selected: %w", errors.ErrEmptySquare)
	}
	if !g.MyTurn() {
		return chess.Move{}, fmt.Errorf("%s to move: %w", g.Board.Turn, errors.ErrNotYourTurn)
	}
	if err := g.Rules.Move(g.Board, from, to); err != nil {
		return chess.Move{}, err
	}
	g.applied++
	return chess.Move{From: from, To: to}, nil
}

// ApplyRemote applies a move reported by the server. Plies already seen
// are ignored and reported as false; a gap in plies is an error.
func (g *Game) ApplyRemote(ply int, m chess.Move) (bool, error) {
	if ply <= g.applied {
		return false, nil
	}
	if ply != g.applied+1 {
		return false, fmt.Errorf("ply %d after %d: %w", ply, g.applied, errors.ErrProtocol)
	}
	if err := g.Rules.Move(g.Board, m.From, m.To); err != nil {
		var me *errors.MoveError
		if errors.As(err, &me) {
			me.Ply = ply
		}
		return false, err
	}
	g.applied++
	return true, nil
}

// Reset replaces the local board, e.g. after a desync.
func (g *Game) Reset(b *chess.Board, plies int) {
	g.Board = b
	g.applied = plies
	g.hasSel = false
}

// Notation encodes the local board.
func (g *Game) Notation() string {
	return engine.Encode(g.Board)
}
