// Package httpx serves the lobby over HTTP: a JSON status API and the
// line protocol carried over websocket text messages.
package httpx

import (
	"context"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/bitmato-studio/bitmato-chess/internal/config"
	"github.com/bitmato-studio/bitmato-chess/internal/render"
	"github.com/bitmato-studio/bitmato-chess/internal/session"
)

// Server is the HTTP front end of a lobby.
type Server struct {
	lobby  *session.Lobby
	cfg    *config.ServerConfig
	app    *fiber.App
	logger *log.Logger
	ctx    context.Context
}

// MatchView is the JSON form of one match.
type MatchView struct {
	session.MatchInfo
	WhiteName string   `json:"white_name"`
	BlackName string   `json:"black_name"`
	Rows      []string `json:"rows"`
}

// New builds the routes. A nil logger discards request errors.
func New(lobby *session.Lobby, cfg *config.ServerConfig, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.NewServerConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		lobby:  lobby,
		cfg:    cfg,
		logger: logger,
		ctx:    context.Background(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "bitmato",
		DisableStartupMessage: true,
		IdleTimeout:           cfg.IdleTimeout.Duration,
	})

	api := s.app.Group("/api")
	api.Get("/status", s.status)
	api.Get("/matches", s.matches)
	api.Get("/matches/:id", s.match)

	s.app.Use("/ws", upgradeOnly)
	s.app.Get("/ws", websocket.New(s.serveWS, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
	return s
}

// App returns the fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.ctx = ctx
	go func() {
		<-ctx.Done()
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Printf("http shutdown: %v", err)
		}
	}()
	s.logger.Printf("http listening on %s", ln.Addr())
	return s.app.Listener(ln)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) status(c *fiber.Ctx) error {
	return c.JSON(s.lobby.Status())
}

func (s *Server) matches(c *fiber.Ctx) error {
	infos := s.lobby.Matches()
	views := make([]MatchView, 0, len(infos))
	for _, info := range infos {
		views = append(views, s.view(info, nil))
	}
	return c.JSON(views)
}

func (s *Server) match(c *fiber.Ctx) error {
	m, ok := s.lobby.Match(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "match not found",
		})
	}
	rows := strings.Split(strings.TrimSuffix(render.Text(m.Board()), "\n"), "\n")
	return c.JSON(s.view(m.Info(), rows))
}

func (s *Server) view(info session.MatchInfo, rows []string) MatchView {
	v := MatchView{MatchInfo: info, Rows: rows}
	if p, ok := s.lobby.Accounts().Player(info.White); ok {
		v.WhiteName = p.Name
	}
	if p, ok := s.lobby.Accounts().Player(info.Black); ok {
		v.BlackName = p.Name
	}
	return v
}

func upgradeOnly(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (s *Server) serveWS(c *websocket.Conn) {
	conn := newWSConn(c, s.cfg.MaxLineBytes, s.cfg.IdleTimeout.Duration)
	if err := s.lobby.ServeConn(s.ctx, conn); err != nil {
		s.logger.Printf("ws %s: %v", c.RemoteAddr(), err)
	}
}
