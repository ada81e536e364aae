package chess

// GameRecord is a recorded match: a starting notation and the moves played
// from it, in order.
type GameRecord struct {
	// Name identifies the record, usually the match id or file name.
	Name string

	// Start is the starting notation. Empty means the default position.
	Start string

	// Comments are free-form header lines.
	Comments []string

	Moves []Move
}

// NewGameRecord creates an empty record.
func NewGameRecord(name, start string) *GameRecord {
	return &GameRecord{Name: name, Start: start}
}

// Add appends a move to the record.
func (g *GameRecord) Add(m Move) {
	g.Moves = append(g.Moves, m)
}

// Plies returns the number of recorded moves.
func (g *GameRecord) Plies() int {
	return len(g.Moves)
}

// Last returns the most recent move and whether there is one.
func (g *GameRecord) Last() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}
