package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/protocol"
	"github.com/bitmato-studio/bitmato-chess/internal/replay"
)

// LineConn is a line-oriented connection. Lines carry no trailing newline.
type LineConn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// Lobby owns players, the matchmaking queue and all matches. One Lobby
// serves every transport.
type Lobby struct {
	accounts *Accounts
	queue    *Queue

	mu       sync.RWMutex
	matches  map[string]*Match
	byPlayer map[string]*Match // player id -> latest match

	rules     engine.Rules
	recordDir string
	logger    *log.Logger
	verbosity int
	started   time.Time
}

// Option configures a Lobby.
type Option func(*Lobby)

// WithRules sets the rule variant used by new matches.
func WithRules(r engine.Rules) Option {
	return func(l *Lobby) {
		l.rules = r
	}
}

// WithRecordDir makes ended matches write a record file into dir.
func WithRecordDir(dir string) Option {
	return func(l *Lobby) {
		l.recordDir = dir
	}
}

// WithLogger sets the logger and its verbosity (0 silent, 2 per-command).
func WithLogger(logger *log.Logger, verbosity int) Option {
	return func(l *Lobby) {
		l.logger = logger
		l.verbosity = verbosity
	}
}

// WithAccounts replaces the default account store.
func WithAccounts(a *Accounts) Option {
	return func(l *Lobby) {
		l.accounts = a
	}
}

// NewLobby creates an empty lobby.
func NewLobby(opts ...Option) *Lobby {
	l := &Lobby{
		queue:    NewQueue(),
		matches:  make(map[string]*Match),
		byPlayer: make(map[string]*Match),
		rules:    engine.DefaultRules(),
		logger:   log.New(io.Discard, "", 0),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.accounts == nil {
		l.accounts = NewAccounts(0)
	}
	return l
}

// Accounts returns the account store.
func (l *Lobby) Accounts() *Accounts {
	return l.accounts
}

func (l *Lobby) logf(level int, format string, args ...any) {
	if l.verbosity >= level {
		l.logger.Printf(format, args...)
	}
}

// Status summarises the lobby.
type Status struct {
	Online     int    `json:"online"`
	Registered int    `json:"registered"`
	Queued     int    `json:"queued"`
	Matches    int    `json:"matches"`
	Active     int    `json:"active"`
	Uptime     string `json:"uptime"`
}

// Status returns current counters.
func (l *Lobby) Status() Status {
	l.mu.RLock()
	total, active := len(l.matches), 0
	for _, m := range l.matches {
		if !m.Ended() {
			active++
		}
	}
	l.mu.RUnlock()

	return Status{
		Online:     l.accounts.Online(),
		Registered: l.accounts.Registered(),
		Queued:     l.queue.Size(),
		Matches:    total,
		Active:     active,
		Uptime:     time.Since(l.started).Round(time.Second).String(),
	}
}

// Match returns the match with the given id.
func (l *Lobby) Match(id string) (*Match, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.matches[id]
	return m, ok
}

// MatchOf returns the latest match a player was paired into.
func (l *Lobby) MatchOf(playerID string) (*Match, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.byPlayer[playerID]
	return m, ok
}

// Matches returns snapshots of all matches, oldest first.
func (l *Lobby) Matches() []MatchInfo {
	l.mu.RLock()
	infos := make([]MatchInfo, 0, len(l.matches))
	for _, m := range l.matches {
		infos = append(infos, m.Info())
	}
	l.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Started.Equal(infos[j].Started) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Started.Before(infos[j].Started)
	})
	return infos
}

// Enqueue adds a player to the queue and pairs whoever is waiting.
// It returns the player's match if they are now in one.
func (l *Lobby) Enqueue(playerID string) (*Match, bool) {
	if m, ok := l.MatchOf(playerID); ok && !m.Ended() {
		return m, true
	}
	if err := l.queue.Add(playerID); err != nil {
		l.logf(2, "%v", err)
	}
	l.pair()
	m, ok := l.MatchOf(playerID)
	if !ok || m.Ended() {
		return nil, false
	}
	return m, true
}

func (l *Lobby) pair() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		white, black, ok := l.queue.NextPair()
		if !ok {
			return
		}
		m := NewMatch(uuid.NewString(), white, black, l.rules)
		l.matches[m.ID] = m
		l.byPlayer[white] = m
		l.byPlayer[black] = m
		l.logf(1, "match %s started: %s vs %s", m.ID, l.name(white), l.name(black))
	}
}

func (l *Lobby) name(playerID string) string {
	if p, ok := l.accounts.Player(playerID); ok {
		return p.Name
	}
	return playerID
}

// EndMatch ends a match and writes its record when a record directory is
// configured. Ending an ended match does nothing.
func (l *Lobby) EndMatch(m *Match, reason string) {
	if !m.End() {
		return
	}
	l.logf(1, "match %s ended: %s", m.ID, reason)
	if l.recordDir == "" {
		return
	}

	rec := m.Record()
	rec.Comments = append(rec.Comments,
		fmt.Sprintf("white %s", l.name(m.White)),
		fmt.Sprintf("black %s", l.name(m.Black)),
		reason,
	)
	path, err := replay.WriteFile(l.recordDir, rec)
	if err != nil {
		l.logf(0, "match %s: %v", m.ID, err)
		return
	}
	l.logf(2, "match %s recorded to %s", m.ID, path)
}

// leave cleans up after a disconnected player. A running match is ended.
func (l *Lobby) leave(p *Player) {
	l.queue.Remove(p.ID)
	if m, ok := l.MatchOf(p.ID); ok {
		l.EndMatch(m, fmt.Sprintf("%s left", p.Name))
	}
	l.accounts.Logout(p.ID)
	l.logf(1, "%s disconnected", p.Name)
}

// ServeConn runs one session: a login line, then commands until QUIT, EOF
// or a read error. The connection is closed on return.
func (l *Lobby) ServeConn(ctx context.Context, c LineConn) error {
	defer c.Close()

	line, err := c.ReadLine()
	if err != nil {
		return err
	}
	login, err := protocol.ParseLogin(line)
	if err != nil {
		_ = c.WriteLine(protocol.Errorf("%v", err))
		return err
	}
	p, err := l.accounts.Login(login.Username, login.Password)
	if err != nil {
		l.logf(1, "login %q refused: %v", login.Username, err)
		_ = c.WriteLine(protocol.Errorf("%v", err))
		return err
	}
	defer l.leave(p)

	l.logf(1, "%s logged in as %s", p.Name, p.ID)
	if err := c.WriteLine(p.ID); err != nil {
		return err
	}

	for ctx.Err() == nil {
		line, err := c.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		req, err := protocol.ParseRequest(line)
		var reply string
		quit := false
		if err != nil {
			reply = protocol.Errorf("%v", err)
		} else {
			reply, quit = l.handle(p, req)
		}
		l.logf(2, "%s: %s -> %s", p.Name, req, reply)

		if err := c.WriteLine(reply); err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

// handle executes one request for p and returns the reply line.
func (l *Lobby) handle(p *Player, req protocol.Request) (string, bool) {
	switch req.Cmd {
	case protocol.CmdRequestMatch:
		if m, ok := l.Enqueue(p.ID); ok {
			return protocol.FormatReply(protocol.ReplyMatches, m.ID), false
		}
		return protocol.ReplyQueued, false

	case protocol.CmdTryPair:
		if m, ok := l.MatchOf(p.ID); ok && !m.Ended() {
			return protocol.FormatReply(protocol.ReplyMatches, m.ID), false
		}
		return protocol.FormatReply(protocol.ReplyPlayers, fmt.Sprint(l.queue.Size())), false

	case protocol.CmdPlayerName:
		other, ok := l.accounts.Player(strings.TrimSpace(req.Payload))
		if !ok {
			return protocol.Errorf("unknown player"), false
		}
		return other.Name, false

	case protocol.CmdQuit:
		return protocol.ReplyBye, true
	}

	m, ok := l.MatchOf(p.ID)
	switch req.Cmd {
	case protocol.CmdMatchData, protocol.CmdUpdateMove, protocol.CmdUpdateFull,
		protocol.CmdLastMove, protocol.CmdNotation, protocol.CmdEndMatch:
		if !ok {
			return protocol.Errorf("%v", errors.ErrNotInMatch), false
		}
	default:
		return protocol.Errorf("unknown command"), false
	}

	switch req.Cmd {
	case protocol.CmdMatchData:
		return protocol.MatchData{MatchID: m.ID, Player1: m.White, Player2: m.Black}.Encode(), false

	case protocol.CmdUpdateMove:
		mv, err := chess.ParseMove(req.Payload)
		if err != nil {
			return protocol.Errorf("%v", err), false
		}
		if err := m.Play(p.ID, mv); err != nil {
			l.logf(2, "%s: move %s rejected: %v", p.Name, mv, err)
			return protocol.Errorf("%v", err), false
		}
		return protocol.ReplyUpdated, false

	case protocol.CmdUpdateFull:
		notation := m.Notation()
		if strings.TrimSpace(req.Payload) == notation {
			return protocol.ReplyUpdated, false
		}
		return protocol.FormatReply(protocol.ReplyDesync, notation), false

	case protocol.CmdLastMove:
		if m.Ended() {
			return protocol.ReplyOver, false
		}
		ply, mv, ok := m.LastMove()
		if !ok {
			return protocol.ReplyStart, false
		}
		return protocol.FormatMove(ply, mv), false

	case protocol.CmdNotation:
		return m.Notation(), false

	default: // CmdEndMatch
		l.EndMatch(m, fmt.Sprintf("ended by %s", p.Name))
		return protocol.ReplyEnded, false
	}
}
