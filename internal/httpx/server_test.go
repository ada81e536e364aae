package httpx

import (
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/session"
	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

func newLobby() *session.Lobby {
	return session.NewLobby(session.WithAccounts(session.NewAccounts(bcrypt.MinCost)))
}

// startMatch pairs two players and plays one white move.
func startMatch(t *testing.T, l *session.Lobby) *session.Match {
	t.Helper()
	alice, _ := l.Accounts().Login("alice", "pw")
	bob, _ := l.Accounts().Login("bob", "pw")
	l.Enqueue(alice.ID)
	m, ok := l.Enqueue(bob.ID)
	if !ok {
		t.Fatal("players were not paired")
	}
	if err := m.Play(alice.ID, chess.Move{From: chess.Pos{X: 4, Y: 6}, To: chess.Pos{X: 4, Y: 4}}); err != nil {
		t.Fatal(err)
	}
	return m
}

func getJSON(t *testing.T, app *fiber.App, path string, wantStatus int, v any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, wantStatus, "GET %s", path)
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
}

func TestStatus(t *testing.T) {
	l := newLobby()
	startMatch(t, l)
	s := New(l, nil, nil)

	var st session.Status
	getJSON(t, s.App(), "/api/status", fiber.StatusOK, &st)
	testutil.AssertEqual(t, st.Online, 2)
	testutil.AssertEqual(t, st.Registered, 2)
	testutil.AssertEqual(t, st.Matches, 1)
	testutil.AssertEqual(t, st.Active, 1)
	testutil.AssertEqual(t, st.Queued, 0)
}

func TestMatches(t *testing.T) {
	l := newLobby()
	m := startMatch(t, l)
	s := New(l, nil, nil)

	var list []MatchView
	getJSON(t, s.App(), "/api/matches", fiber.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("got %d matches, want 1", len(list))
	}
	testutil.AssertEqual(t, list[0].ID, m.ID)
	testutil.AssertEqual(t, list[0].WhiteName, "alice")
	testutil.AssertEqual(t, list[0].BlackName, "bob")
	testutil.AssertEqual(t, list[0].Plies, 1)
	testutil.AssertEqual(t, list[0].Turn, "Black")
}

func TestMatch(t *testing.T) {
	l := newLobby()
	m := startMatch(t, l)
	s := New(l, nil, nil)

	var v MatchView
	getJSON(t, s.App(), "/api/matches/"+m.ID, fiber.StatusOK, &v)
	testutil.AssertEqual(t, v.Notation, m.Notation())
	testutil.AssertEqual(t, len(v.Rows), 9)
	testutil.AssertEqual(t, v.Rows[5], "4 1 1 1 1 P 1 1 1")

	getJSON(t, s.App(), "/api/matches/nope", fiber.StatusNotFound, nil)
}

func TestWebsocket_RequiresUpgrade(t *testing.T) {
	s := New(newLobby(), nil, nil)
	getJSON(t, s.App(), "/ws", fiber.StatusUpgradeRequired, nil)
}

func TestWebsocket_Session(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := newLobby()
	s := New(l, nil, nil)
	go s.Serve(ctx, ln)

	conn, _, err := fws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	call := func(line string) string {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(fws.TextMessage, []byte(line)); err != nil {
			t.Fatalf("write %q: %v", line, err)
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read reply to %q: %v", line, err)
		}
		return string(msg)
	}

	id := call("ivy;pw")
	testutil.AssertEqual(t, len(id), 36)
	testutil.AssertEqual(t, call("TP"), "PLAYERS;0")
	testutil.AssertEqual(t, call("RMM"), "QUEUED")
	testutil.AssertEqual(t, call("GPN;"+id), "ivy")
	testutil.AssertEqual(t, call("QUIT"), "BYE")
}
