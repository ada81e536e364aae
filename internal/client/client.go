// Package client talks to a bitmato server over the line protocol and
// keeps a local copy of the match board.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/protocol"
)

// MaxReplyBytes caps one reply line.
const MaxReplyBytes = 64 * 1024

// Client is one session with a server. Calls are serialised.
type Client struct {
	Host   string
	UserID string
	Name   string

	conn    net.Conn
	sc      *bufio.Scanner
	timeout time.Duration
	mu      sync.Mutex
}

// Dial connects to addr. timeout bounds the dial and every reply wait;
// zero means no limit.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		Host:    addr,
		conn:    conn,
		sc:      protocol.NewScanner(conn, MaxReplyBytes),
		timeout: timeout,
	}, nil
}

// Login sends the login line and stores the returned user id.
// An empty user asks the server for a guest name.
func (c *Client) Login(user, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(protocol.Login{Username: user, Password: password}.String()); err != nil {
		return err
	}
	line, err := c.recv()
	if err != nil {
		return err
	}
	r := protocol.ParseReply(line)
	if r.IsError() {
		return fmt.Errorf("login: %s: %w", r.Field(0), errors.ErrAuth)
	}
	c.UserID = line
	c.Name = user
	if user != "" {
		return nil
	}

	// Guests learn their generated name.
	if err := c.send(protocol.Request{Cmd: protocol.CmdPlayerName, Payload: c.UserID}.String()); err != nil {
		return err
	}
	name, err := c.recv()
	if err != nil {
		return err
	}
	if err := protocol.ParseReply(name).Err(); err != nil {
		return err
	}
	c.Name = name
	return nil
}

// Send writes a raw line.
func (c *Client) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(line)
}

// SendCmd writes a command with an optional payload.
func (c *Client) SendCmd(cmd, payload string) error {
	return c.Send(protocol.Request{Cmd: cmd, Payload: payload}.String())
}

// Recv reads one reply line.
func (c *Client) Recv() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recv()
}

// Call sends a command and parses its reply. ERR replies become errors.
func (c *Client) Call(cmd, payload string) (protocol.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(protocol.Request{Cmd: cmd, Payload: payload}.String()); err != nil {
		return protocol.Reply{}, err
	}
	line, err := c.recv()
	if err != nil {
		return protocol.Reply{}, err
	}
	r := protocol.ParseReply(line)
	return r, r.Err()
}

func (c *Client) send(line string) error {
	if c.timeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	return protocol.WriteLine(c.conn, line)
}

func (c *Client) recv() (string, error) {
	if c.timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	if !c.sc.Scan() {
		if err := c.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.sc.Text(), nil
}

func unexpected(cmd string, r protocol.Reply) error {
	return fmt.Errorf("%s: unexpected reply %q: %w", cmd, r.Raw, errors.ErrProtocol)
}

// RequestMatch joins the queue. It returns the match id once paired.
func (c *Client) RequestMatch() (matchID string, err error) {
	r, err := c.Call(protocol.CmdRequestMatch, "")
	if err != nil {
		return "", err
	}
	switch r.Kind {
	case protocol.ReplyQueued:
		return "", nil
	case protocol.ReplyMatches:
		return r.Field(0), nil
	}
	return "", unexpected(protocol.CmdRequestMatch, r)
}

// PollMatch returns the match id once paired, otherwise the number of
// players waiting.
func (c *Client) PollMatch() (matchID string, waiting int, err error) {
	r, err := c.Call(protocol.CmdTryPair, "")
	if err != nil {
		return "", 0, err
	}
	switch r.Kind {
	case protocol.ReplyMatches:
		return r.Field(0), 0, nil
	case protocol.ReplyPlayers:
		n, err := strconv.Atoi(r.Field(0))
		if err != nil {
			return "", 0, unexpected(protocol.CmdTryPair, r)
		}
		return "", n, nil
	}
	return "", 0, unexpected(protocol.CmdTryPair, r)
}

// MatchData returns the current match and its players.
func (c *Client) MatchData() (protocol.MatchData, error) {
	r, err := c.Call(protocol.CmdMatchData, "")
	if err != nil {
		return protocol.MatchData{}, err
	}
	return protocol.DecodeMatchData(r.Raw)
}

// PlayerName looks up an online player's name.
func (c *Client) PlayerName(userID string) (string, error) {
	r, err := c.Call(protocol.CmdPlayerName, userID)
	if err != nil {
		return "", err
	}
	return r.Raw, nil
}

// SendMove submits a move. A rejected move is returned as an error.
func (c *Client) SendMove(m chess.Move) error {
	r, err := c.Call(protocol.CmdUpdateMove, m.String())
	if err != nil {
		return err
	}
	if r.Kind != protocol.ReplyUpdated {
		return unexpected(protocol.CmdUpdateMove, r)
	}
	return nil
}

// Sync compares a local notation with the server's. It returns the
// server notation and whether they matched.
func (c *Client) Sync(notation string) (string, bool, error) {
	r, err := c.Call(protocol.CmdUpdateFull, notation)
	if err != nil {
		return "", false, err
	}
	switch r.Kind {
	case protocol.ReplyUpdated:
		return notation, true, nil
	case protocol.ReplyDesync:
		return r.Field(0), false, nil
	}
	return "", false, unexpected(protocol.CmdUpdateFull, r)
}

// LastMove describes the GLM reply. Ply 0 means no move yet.
type LastMove struct {
	Ply   int
	Move  chess.Move
	Ended bool
}

// LastMove returns the most recent move of the current match.
func (c *Client) LastMove() (LastMove, error) {
	r, err := c.Call(protocol.CmdLastMove, "")
	if err != nil {
		return LastMove{}, err
	}
	switch r.Kind {
	case protocol.ReplyStart:
		return LastMove{}, nil
	case protocol.ReplyOver:
		return LastMove{Ended: true}, nil
	}
	ply, m, err := protocol.ParseMoveReply(r)
	if err != nil {
		return LastMove{}, err
	}
	return LastMove{Ply: ply, Move: m}, nil
}

// Notation returns the server's current position.
func (c *Client) Notation() (string, error) {
	r, err := c.Call(protocol.CmdNotation, "")
	if err != nil {
		return "", err
	}
	return r.Raw, nil
}

// EndMatch ends the current match.
func (c *Client) EndMatch() error {
	r, err := c.Call(protocol.CmdEndMatch, "")
	if err != nil {
		return err
	}
	if r.Kind != protocol.ReplyEnded {
		return unexpected(protocol.CmdEndMatch, r)
	}
	return nil
}

// Quit ends the session politely and closes the connection.
func (c *Client) Quit() error {
	_, err := c.Call(protocol.CmdQuit, "")
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) String() string {
	return fmt.Sprintf("client %s@%s (%s)", c.Name, c.Host, c.UserID)
}
