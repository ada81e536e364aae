package session

import (
	"bufio"
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
	"github.com/bitmato-studio/bitmato-chess/internal/protocol"
)

// Server accepts line-protocol sessions over TCP.
type Server struct {
	lobby *Lobby
	cfg   *config.ServerConfig

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// NewServer creates a server for lobby. A nil cfg uses the defaults.
func NewServer(lobby *Lobby, cfg *config.ServerConfig) *Server {
	if cfg == nil {
		cfg = config.NewServerConfig()
	}
	return &Server{
		lobby: lobby,
		cfg:   cfg,
		conns: make(map[net.Conn]struct{}),
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes the
// listener and every open session and waits for their goroutines.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
			s.closeAll()
		case <-stop:
		}
	}()

	s.lobby.logf(1, "tcp listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return err
		}

		s.track(conn, true)
		if ctx.Err() != nil {
			// closeAll may already have swept the set.
			s.track(conn, false)
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)

			lc := NewStreamConn(conn, s.cfg.MaxLineBytes, s.cfg.IdleTimeout.Duration)
			if err := s.lobby.ServeConn(ctx, lc); err != nil {
				s.lobby.logf(1, "%s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

func (s *Server) track(c net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

// StreamConn adapts a net.Conn to LineConn.
type StreamConn struct {
	conn net.Conn
	sc   *bufio.Scanner
	idle time.Duration
	wmu  sync.Mutex
}

// NewStreamConn wraps conn. Lines longer than maxLine fail the read; a
// positive idle sets a read deadline before every line.
func NewStreamConn(conn net.Conn, maxLine int, idle time.Duration) *StreamConn {
	return &StreamConn{
		conn: conn,
		sc:   protocol.NewScanner(conn, maxLine),
		idle: idle,
	}
}

// ReadLine returns the next line, or io.EOF when the peer closed.
func (c *StreamConn) ReadLine() (string, error) {
	if c.idle > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.idle)); err != nil {
			return "", err
		}
	}
	if !c.sc.Scan() {
		if err := c.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.sc.Text(), nil
}

// WriteLine writes line followed by a newline.
func (c *StreamConn) WriteLine(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return protocol.WriteLine(c.conn, line)
}

// Close closes the underlying connection.
func (c *StreamConn) Close() error {
	return c.conn.Close()
}
