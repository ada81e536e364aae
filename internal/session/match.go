package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Match is a game between two players. White moves first.
// All board access goes through the match lock.
type Match struct {
	ID      string
	White   string // player id
	Black   string // player id
	Started time.Time

	mu     sync.Mutex
	rules  engine.Rules
	board  *chess.Board
	record *chess.GameRecord
	ended  bool
}

// MatchInfo is a point-in-time view of a match.
type MatchInfo struct {
	ID       string    `json:"id"`
	White    string    `json:"white"`
	Black    string    `json:"black"`
	Notation string    `json:"notation"`
	Turn     string    `json:"turn"`
	Plies    int       `json:"plies"`
	Ended    bool      `json:"ended"`
	Started  time.Time `json:"started"`
}

// NewMatch starts a match from the default position.
func NewMatch(id, white, black string, rules engine.Rules) *Match {
	return &Match{
		ID:      id,
		White:   white,
		Black:   black,
		Started: time.Now(),
		rules:   rules,
		board:   engine.NewDefaultBoard(),
		record:  chess.NewGameRecord(id, engine.DefaultNotation),
	}
}

// TeamOf returns the team a player controls, or NoTeam.
func (m *Match) TeamOf(playerID string) chess.Team {
	switch playerID {
	case m.White:
		return chess.White
	case m.Black:
		return chess.Black
	default:
		return chess.NoTeam
	}
}

// Opponent returns the other player's id.
func (m *Match) Opponent(playerID string) string {
	if playerID == m.White {
		return m.Black
	}
	return m.White
}

// Play applies a move for a player. The player must be in the match, it
// must be their turn and the origin must hold one of their pieces.
func (m *Match) Play(playerID string, mv chess.Move) error {
	team := m.TeamOf(playerID)
	if team == chess.NoTeam {
		return errors.ErrNotInMatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ended {
		return errors.ErrMatchEnded
	}
	if m.board.Turn != team {
		return fmt.Errorf("%s to move: %w", m.board.Turn, errors.ErrNotYourTurn)
	}
	if mv.From.InBounds() {
		if p, ok := m.board.EntityAt(mv.From); ok && p.Team != team {
			return fmt.Errorf("%v is not yours: %w", p, errors.ErrNotYourTurn)
		}
	}

	if err := m.rules.Move(m.board, mv.From, mv.To); err != nil {
		return err
	}
	m.record.Add(mv)
	return nil
}

// Notation returns the current position.
func (m *Match) Notation() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return engine.Encode(m.board)
}

// Board returns a copy of the current board.
func (m *Match) Board() *chess.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Clone()
}

// LastMove returns the most recent move and its 1-based ply.
func (m *Match) LastMove() (int, chess.Move, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.record.Last()
	return m.record.Plies(), mv, ok
}

// End finishes the match. It reports false if the match had already ended.
func (m *Match) End() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ended {
		return false
	}
	m.ended = true
	return true
}

// Ended reports whether the match is over.
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

// Record returns a copy of the moves played so far.
func (m *Match) Record() *chess.GameRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := *m.record
	rec.Moves = append([]chess.Move(nil), m.record.Moves...)
	rec.Comments = append([]string(nil), m.record.Comments...)
	return &rec
}

// Info returns a snapshot of the match.
func (m *Match) Info() MatchInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MatchInfo{
		ID:       m.ID,
		White:    m.White,
		Black:    m.Black,
		Notation: engine.Encode(m.board),
		Turn:     m.board.Turn.String(),
		Plies:    m.record.Plies(),
		Ended:    m.ended,
		Started:  m.Started,
	}
}
