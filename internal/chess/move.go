package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// MoveSeparator separates the four coordinates of a move's wire form.
const MoveSeparator = ":"

// Move is an origin/destination pair.
type Move struct {
	From Pos
	To   Pos
}

// String returns the wire form "x1:y1:x2:y2".
func (m Move) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", m.From.X, m.From.Y, m.To.X, m.To.Y)
}

// Delta returns the absolute column and row distances of the move.
func (m Move) Delta() (dx, dy int) {
	d := m.To.Sub(m.From)
	if d.X < 0 {
		d.X = -d.X
	}
	if d.Y < 0 {
		d.Y = -d.Y
	}
	return d.X, d.Y
}

// ParseMove parses the wire form "x1:y1:x2:y2".
// Coordinates must be non-negative integers; range checking is left to
// the rule engine.
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), MoveSeparator)
	if len(parts) != 4 {
		return Move{}, fmt.Errorf("move %q: want 4 coordinates, got %d", s, len(parts))
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Move{}, fmt.Errorf("move %q: bad coordinate %q", s, p)
		}
		n[i] = v
	}
	return Move{From: Pos{X: n[0], Y: n[1]}, To: Pos{X: n[2], Y: n[3]}}, nil
}
