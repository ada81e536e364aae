package httpx

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// wsConn carries one protocol line per websocket text message.
type wsConn struct {
	c    *websocket.Conn
	idle time.Duration
	wmu  sync.Mutex
}

func newWSConn(c *websocket.Conn, maxLine int, idle time.Duration) *wsConn {
	if maxLine > 0 {
		c.SetReadLimit(int64(maxLine))
	}
	return &wsConn{c: c, idle: idle}
}

func (w *wsConn) ReadLine() (string, error) {
	for {
		if w.idle > 0 {
			if err := w.c.SetReadDeadline(time.Now().Add(w.idle)); err != nil {
				return "", err
			}
		}
		mt, msg, err := w.c.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		switch mt {
		case websocket.TextMessage:
			return strings.TrimRight(string(msg), "\r\n"), nil
		case websocket.BinaryMessage:
			return "", fmt.Errorf("binary message: %w", errors.ErrProtocol)
		}
	}
}

func (w *wsConn) WriteLine(line string) error {
	w.wmu.Lock()
	defer w.wmu.Unlock()
	return w.c.WriteMessage(websocket.TextMessage, []byte(line))
}

func (w *wsConn) Close() error {
	return w.c.Close()
}
