package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/client"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/render"
)

type player struct {
	c      *client.Client
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger
	rules  engine.Rules
	poll   time.Duration

	game *client.Game
	last *chess.Move
}

func (p *player) run() error {
	if err := p.waitForMatch(); err != nil {
		return err
	}

	data, err := p.c.MatchData()
	if err != nil {
		return err
	}
	team, opponent := chess.White, data.Player2
	if data.Player2 == p.c.UserID {
		team, opponent = chess.Black, data.Player1
	}
	name, err := p.c.PlayerName(opponent)
	if err != nil {
		name = "(unknown)"
	}
	fmt.Fprintf(p.out, "Match %s: you play %s against %s\n", data.MatchID, team, name)
	fmt.Fprintln(p.out, "Enter moves as \"x1 y1 x2 y2\"; \"end\" ends the match.")

	p.game = client.NewGame(team, p.rules)
	for {
		p.draw()
		var done bool
		if p.game.MyTurn() {
			done, err = p.ownTurn()
		} else {
			done, err = p.waitTurn()
		}
		if err != nil || done {
			return err
		}
	}
}

func (p *player) waitForMatch() error {
	id, err := p.c.RequestMatch()
	if err != nil {
		return err
	}
	for id == "" {
		var waiting int
		id, waiting, err = p.c.PollMatch()
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintf(p.out, "\rWaiting for an opponent (%d in queue)...", waiting)
			time.Sleep(p.poll)
		}
	}
	fmt.Fprintln(p.out)
	return nil
}

func (p *player) draw() {
	var marks []chess.Pos
	if p.last != nil {
		marks = []chess.Pos{p.last.From, p.last.To}
	}
	fmt.Fprint(p.out, render.Color(p.game.Board, marks...))
}

// ownTurn reads moves until one is accepted by both boards.
func (p *player) ownTurn() (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s to move> ", p.game.Team)
		line, err := p.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return true, p.c.EndMatch()
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "end", "quit":
			return true, p.c.EndMatch()
		}

		mv, err := parseMoveInput(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if !p.game.Select(mv.From) {
			fmt.Fprintf(p.out, "no piece of yours at %v\n", mv.From)
			continue
		}
		if _, err := p.game.Release(mv.To); err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if err := p.c.SendMove(mv); err != nil {
			fmt.Fprintln(p.out, err)
			return false, p.resync()
		}
		p.last = &mv
		return false, nil
	}
}

// waitTurn polls until the opponent moves or the match ends.
func (p *player) waitTurn() (bool, error) {
	fmt.Fprintln(p.out, "Waiting for the opponent...")
	for {
		lm, err := p.c.LastMove()
		if err != nil {
			return true, err
		}
		if lm.Ended {
			fmt.Fprintln(p.out, "The match has ended.")
			return true, nil
		}
		if lm.Ply > p.game.Applied() {
			if _, err := p.game.ApplyRemote(lm.Ply, lm.Move); err != nil {
				p.logger.Printf("remote move: %v", err)
				return false, p.resync()
			}
			p.last = &lm.Move
			return false, nil
		}
		time.Sleep(p.poll)
	}
}

// resync replaces the local board with the server's.
func (p *player) resync() error {
	notation, err := p.c.Notation()
	if err != nil {
		return err
	}
	b, err := engine.Decode(notation)
	if err != nil {
		return err
	}
	lm, err := p.c.LastMove()
	if err != nil {
		return err
	}
	markMovedPawns(b)
	p.logger.Printf("resynced to %q at ply %d", notation, lm.Ply)
	p.game.Reset(b, lm.Ply)
	return nil
}

// markMovedPawns sets HasMoved on pawns away from their home row, which the
// notation does not carry. A pawn that has walked back home still looks
// unmoved here and the server may refuse its double step.
func markMovedPawns(b *chess.Board) {
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			pos := chess.Pos{X: x, Y: y}
			pc, ok := b.EntityAt(pos)
			if !ok || pc.Kind != chess.Pawn || y == pawnHomeRow(pc.Team) {
				continue
			}
			pc.HasMoved = true
			b.Place(pos, pc)
		}
	}
}

func pawnHomeRow(team chess.Team) int {
	if team == chess.White {
		return 6
	}
	return 1
}

// parseMoveInput accepts "x1 y1 x2 y2" or the wire form "x1:y1:x2:y2".
func parseMoveInput(s string) (chess.Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ':' || r == '\t'
	})
	return chess.ParseMove(strings.Join(fields, chess.MoveSeparator))
}
