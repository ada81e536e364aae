// Package protocol defines the newline-delimited line protocol spoken
// between the bitmato server and its clients.
//
// A session starts with a login line "username;password". Every later
// request is "CMD" or "CMD;payload" and gets exactly one reply line.
package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// SplitChar separates a command from its payload and reply fields from
// each other.
const SplitChar = ";"

// Commands.
const (
	CmdRequestMatch = "RMM"  // join the matchmaking queue
	CmdTryPair      = "TP"   // poll the queue
	CmdMatchData    = "GMD"  // match id and players
	CmdPlayerName   = "GPN"  // name for a user id
	CmdUpdateMove   = "UP"   // submit a move
	CmdUpdateFull   = "UF"   // compare a full notation with the server's
	CmdLastMove     = "GLM"  // most recent move
	CmdNotation     = "GN"   // current notation
	CmdEndMatch     = "EM"   // end the match
	CmdQuit         = "QUIT" // close the session
)

// Reply kinds.
const (
	ReplyQueued  = "QUEUED"
	ReplyMatches = "MATCHES"
	ReplyPlayers = "PLAYERS"
	ReplyUpdated = "UPDATED"
	ReplyDesync  = "DESYNC"
	ReplyStart   = "START_OF_MATCH"
	ReplyMove    = "MOVE"
	ReplyOver    = "MATCH_ENDED"
	ReplyEnded   = "ENDED"
	ReplyBye     = "BYE"
	ReplyError   = "ERR"
)

// Request is one parsed command line.
type Request struct {
	Cmd     string
	Payload string
}

// String returns the wire form without the trailing newline.
func (r Request) String() string {
	if r.Payload == "" {
		return r.Cmd
	}
	return r.Cmd + SplitChar + r.Payload
}

// ParseRequest parses a command line. Trailing CR/LF is ignored.
func ParseRequest(line string) (Request, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Request{}, fmt.Errorf("empty request: %w", errors.ErrProtocol)
	}
	cmd, payload, _ := strings.Cut(line, SplitChar)
	if cmd == "" {
		return Request{}, fmt.Errorf("request %q has no command: %w", line, errors.ErrProtocol)
	}
	return Request{Cmd: strings.ToUpper(cmd), Payload: payload}, nil
}

// Login is the first line of a session.
type Login struct {
	Username string
	Password string
}

// String returns the wire form of the login line.
func (l Login) String() string {
	return l.Username + SplitChar + l.Password
}

// ParseLogin parses "username;password". The username may be empty, which
// asks the server for a guest name; the password may contain SplitChar.
func ParseLogin(line string) (Login, error) {
	line = strings.TrimRight(line, "\r\n")
	user, pass, ok := strings.Cut(line, SplitChar)
	if !ok {
		return Login{}, fmt.Errorf("login line has no %q: %w", SplitChar, errors.ErrProtocol)
	}
	return Login{Username: strings.TrimSpace(user), Password: pass}, nil
}

// Reply is one parsed reply line.
type Reply struct {
	Kind   string
	Fields []string
	Raw    string
}

// IsError reports whether the reply is an ERR line.
func (r Reply) IsError() bool {
	return r.Kind == ReplyError
}

// Err returns the reply as an error wrapping ErrProtocol, or nil.
func (r Reply) Err() error {
	if !r.IsError() {
		return nil
	}
	reason := ""
	if len(r.Fields) > 0 {
		reason = r.Fields[0]
	}
	return fmt.Errorf("server: %s: %w", reason, errors.ErrProtocol)
}

// Field returns the i-th field or "".
func (r Reply) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// ParseReply splits a reply line into its kind and fields.
// ERR keeps everything after the first separator as one reason field.
func ParseReply(line string) Reply {
	line = strings.TrimRight(line, "\r\n")
	r := Reply{Raw: line}
	kind, rest, ok := strings.Cut(line, SplitChar)
	r.Kind = kind
	if !ok {
		return r
	}
	if kind == ReplyError {
		r.Fields = []string{rest}
	} else {
		r.Fields = strings.Split(rest, SplitChar)
	}
	return r
}

// FormatReply joins a reply kind and its fields.
func FormatReply(kind string, fields ...string) string {
	if len(fields) == 0 {
		return kind
	}
	return kind + SplitChar + strings.Join(fields, SplitChar)
}

// Errorf formats an ERR reply.
func Errorf(format string, args ...any) string {
	return FormatReply(ReplyError, fmt.Sprintf(format, args...))
}

// FormatMove formats a MOVE reply for the given 1-based ply.
func FormatMove(ply int, m chess.Move) string {
	return FormatReply(ReplyMove, strconv.Itoa(ply), m.String())
}

// ParseMoveReply extracts the ply and move of a MOVE reply.
func ParseMoveReply(r Reply) (int, chess.Move, error) {
	if r.Kind != ReplyMove || len(r.Fields) != 2 {
		return 0, chess.Move{}, fmt.Errorf("not a move reply %q: %w", r.Raw, errors.ErrProtocol)
	}
	ply, err := strconv.Atoi(r.Fields[0])
	if err != nil || ply < 1 {
		return 0, chess.Move{}, fmt.Errorf("bad ply %q: %w", r.Fields[0], errors.ErrProtocol)
	}
	m, err := chess.ParseMove(r.Fields[1])
	if err != nil {
		return 0, chess.Move{}, fmt.Errorf("%v: %w", err, errors.ErrProtocol)
	}
	return ply, m, nil
}

// MatchData is the GMD reply body. Player1 plays White.
type MatchData struct {
	MatchID string `json:"match_id"`
	Player1 string `json:"player_1"`
	Player2 string `json:"player_2"`
}

// Encode returns the JSON line form.
func (d MatchData) Encode() string {
	b, _ := json.Marshal(d)
	return string(b)
}

// DecodeMatchData parses a GMD reply.
func DecodeMatchData(line string) (MatchData, error) {
	var d MatchData
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &d); err != nil {
		return MatchData{}, fmt.Errorf("match data %q: %v: %w", line, err, errors.ErrProtocol)
	}
	return d, nil
}

// NewScanner returns a line scanner that rejects lines longer than max
// bytes with bufio.ErrTooLong.
func NewScanner(r io.Reader, max int) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	initial := 512
	if max < initial {
		initial = max
	}
	sc.Buffer(make([]byte, 0, initial), max)
	return sc
}

// WriteLine writes s and a newline.
func WriteLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}
