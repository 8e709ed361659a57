package server

import (
	"checkers/game"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newClassicGame(t *testing.T, size int) *game.Game {
	t.Helper()
	layout, err := game.ClassicLayout(size)
	require.NoError(t, err)
	g, err := game.NewGame(layout)
	require.NoError(t, err)
	return g
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	ws, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readSnapshot(t *testing.T, ws *websocket.Conn) game.Snapshot {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var snapshot game.Snapshot
	require.NoError(t, ws.ReadJSON(&snapshot))
	return snapshot
}

func TestSpectatorState(t *testing.T) {
	s := NewSpectator()
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/state")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode, "Nothing was published yet")

	g := newClassicGame(t, 8)
	s.Observe(g)

	resp, err = http.Get(server.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot game.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	require.Equal(t, g.Snapshot(), snapshot)
}

func TestSpectatorFeed(t *testing.T) {
	s := NewSpectator()
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	g := newClassicGame(t, 8)
	s.Observe(g)

	ws := dial(t, server)
	require.Equal(t, g.Snapshot(), readSnapshot(t, ws), "New spectators get the current position")
	require.Equal(t, 1, s.Clients())

	require.True(t, g.Play(g.LegalMoves()[0]))
	s.Observe(g)

	got := readSnapshot(t, ws)
	require.Equal(t, game.Second, got.Turn)
	require.Equal(t, 1, got.Steps)
	require.Equal(t, g.Snapshot(), got)
}

func TestSpectatorDisconnect(t *testing.T) {
	s := NewSpectator()
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	s.Observe(newClassicGame(t, 6))
	ws := dial(t, server)
	readSnapshot(t, ws)
	require.Equal(t, 1, s.Clients())

	ws.Close()
	require.Eventually(t, func() bool {
		return s.Clients() == 0
	}, 5*time.Second, 10*time.Millisecond, "Closed connections should be unregistered")

	s.Observe(newClassicGame(t, 6))
	require.NoError(t, s.Close())
}

func TestSpectatorClose(t *testing.T) {
	waitStart := func(t *testing.T, done <-chan error) {
		t.Helper()
		select {
		case err := <-done:
			require.NoError(t, err, "A closed feed is not an error")
		case <-time.After(5 * time.Second):
			t.Fatal("Start should return once the spectator is closed")
		}
	}

	t.Run("close before start", func(t *testing.T) {
		s := NewSpectator()
		require.NoError(t, s.Close())

		done := make(chan error, 1)
		go func() { done <- s.Start("127.0.0.1:0") }()
		waitStart(t, done)
	})

	t.Run("close while serving", func(t *testing.T) {
		s := NewSpectator()
		done := make(chan error, 1)
		go func() { done <- s.Start("127.0.0.1:0") }()

		require.NoError(t, s.Close())
		waitStart(t, done)
	})
}
