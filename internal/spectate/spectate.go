// Package spectate is a read-only SSH view of running matches.
//
//	ssh -p 2222 host [list]          list matches
//	ssh -p 2222 host <id>            print a match
//	ssh -t -p 2222 host watch <id>   redraw a match until it ends
package spectate

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/render"
	"github.com/bitmato-studio/bitmato-chess/internal/session"
)

// PollInterval is how often watch checks for new moves.
const PollInterval = 500 * time.Millisecond

// Server serves spectator sessions for a lobby.
type Server struct {
	lobby  *session.Lobby
	srv    *ssh.Server
	logger *log.Logger
}

// New creates a spectator server. Without cfg.HostKeyFile an ephemeral
// host key is generated when serving starts.
func New(lobby *session.Lobby, cfg *config.ServerConfig, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.NewServerConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{lobby: lobby, logger: logger}
	s.srv = &ssh.Server{
		Addr:        cfg.SSHAddr,
		IdleTimeout: cfg.IdleTimeout.Duration,
		Handler:     s.handle,
	}
	if cfg.HostKeyFile != "" {
		if err := s.srv.SetOption(ssh.HostKeyFile(cfg.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("host key %s: %w", cfg.HostKeyFile, err)
		}
	}
	return s, nil
}

// Serve accepts spectators on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.srv.Close()
	}()
	s.logger.Printf("ssh listening on %s", ln.Addr())
	err := s.srv.Serve(ln)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handle(sess ssh.Session) {
	_, _, isPty := sess.Pty()
	args := sess.Command()
	s.logger.Printf("spectator %s@%s: %q", sess.User(), sess.RemoteAddr(), args)

	switch {
	case len(args) == 0, len(args) == 1 && args[0] == "list":
		s.list(sess)

	case len(args) == 2 && args[0] == "watch":
		m, ok := s.lobby.Match(args[1])
		if !ok {
			s.fail(sess, args[1])
			return
		}
		s.watch(sess, m, isPty)

	case len(args) == 1:
		m, ok := s.lobby.Match(args[0])
		if !ok {
			s.fail(sess, args[0])
			return
		}
		s.show(sess, m, isPty)

	default:
		fmt.Fprintln(sess.Stderr(), "usage: [watch] <match id>")
		sess.Exit(2)
		return
	}
	sess.Exit(0)
}

func (s *Server) fail(sess ssh.Session, id string) {
	fmt.Fprintf(sess.Stderr(), "no match %q\n", id)
	sess.Exit(1)
}

func (s *Server) list(w io.Writer) {
	infos := s.lobby.Matches()
	if len(infos) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for _, info := range infos {
		state := info.Turn + " to move"
		if info.Ended {
			state = "ended"
		}
		fmt.Fprintf(w, "%s  %s vs %s  %d plies  %s\n",
			info.ID, s.name(info.White), s.name(info.Black), info.Plies, state)
	}
}

func (s *Server) name(id string) string {
	if p, ok := s.lobby.Accounts().Player(id); ok {
		return p.Name
	}
	return "(gone)"
}

func (s *Server) show(w io.Writer, m *session.Match, colored bool) {
	info := m.Info()
	fmt.Fprintf(w, "%s (White) vs %s (Black)\n", s.name(info.White), s.name(info.Black))

	_, last, hasLast := m.LastMove()
	if hasLast {
		fmt.Fprint(w, render.DefaultTheme.Render(m.Board(), colored, last.From, last.To))
	} else {
		fmt.Fprint(w, render.DefaultTheme.Render(m.Board(), colored))
	}

	fmt.Fprintln(w, info.Notation)
	if info.Ended {
		fmt.Fprintf(w, "match ended after %d plies\n", info.Plies)
	} else {
		fmt.Fprintf(w, "ply %d, %s to move\n", info.Plies, info.Turn)
	}
}

// watch redraws the match whenever a move is played. It returns when the
// match ends or the spectator disconnects.
func (s *Server) watch(sess ssh.Session, m *session.Match, colored bool) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	seen := -1
	for {
		ply, _, _ := m.LastMove()
		ended := m.Ended()
		if ply != seen || ended {
			if colored {
				io.WriteString(sess, "\x1b[2J\x1b[H")
			}
			s.show(sess, m, colored)
			seen = ply
		}
		if ended {
			return
		}

		select {
		case <-sess.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
