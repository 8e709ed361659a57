package server

import (
	"checkers/game"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const sendBuffer = 16

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // spectators are read-only
	},
}

// Spectator serves the latest board snapshot over HTTP and pushes every new
// snapshot to connected websocket clients. Clients cannot influence the game.
type Spectator struct {
	snapshot *game.Snapshot
	clients  map[*client]struct{}
	mutex    sync.RWMutex
	server   *http.Server
}

type client struct {
	conn *websocket.Conn
	send chan game.Snapshot
}

// NewSpectator initializes and returns a new Spectator.
func NewSpectator() *Spectator {
	s := &Spectator{
		clients: make(map[*client]struct{}),
	}
	s.server = &http.Server{Handler: s.Handler()}
	return s
}

// Handler routes GET /state to the latest snapshot and /ws to the feed.
func (s *Spectator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleGetState)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start serves the handler on addr until Close is called. It returns at once
// if the spectator is already closed.
func (s *Spectator) Start(addr string) error {
	s.mutex.Lock()
	s.server.Addr = addr
	s.mutex.Unlock()

	log.Info().Msgf("spectator feed listening on %s", addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close stops the server and disconnects every client.
func (s *Spectator) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for c := range s.clients {
		s.drop(c)
	}
	return s.server.Close()
}

// Observe publishes the game's current snapshot. It matches engine.Observer.
func (s *Spectator) Observe(g *game.Game) {
	s.Publish(g.Snapshot())
}

// Publish stores the snapshot and queues it for every client. Clients whose
// queue is full are disconnected.
func (s *Spectator) Publish(snapshot game.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.snapshot = &snapshot
	for c := range s.clients {
		select {
		case c.send <- snapshot:
		default:
			log.Warn().Msg("dropping slow spectator")
			s.drop(c)
		}
	}
}

// Snapshot returns the last published snapshot, if any.
func (s *Spectator) Snapshot() (game.Snapshot, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.snapshot == nil {
		return game.Snapshot{}, false
	}
	return *s.snapshot, true
}

func (s *Spectator) Clients() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.clients)
}

func (s *Spectator) handleGetState(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.Snapshot()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Warn().Err(err).Msg("failed to encode snapshot")
	}
}

func (s *Spectator) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan game.Snapshot, sendBuffer)}

	s.mutex.Lock()
	s.clients[c] = struct{}{}
	if s.snapshot != nil {
		c.send <- *s.snapshot
	}
	s.mutex.Unlock()
	log.Debug().Msgf("spectator connected from %s", r.RemoteAddr)

	go c.writePump()
	s.readPump(c)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for snapshot := range c.send {
		if err := c.conn.WriteJSON(snapshot); err != nil {
			return
		}
	}
	err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		log.Debug().Err(err).Msg("failed to send close frame to spectator")
	}
}

// readPump discards incoming messages and unregisters the client once the
// connection fails.
func (s *Spectator) readPump(c *client) {
	defer func() {
		s.mutex.Lock()
		s.drop(c)
		s.mutex.Unlock()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// drop must be called with the mutex held.
func (s *Spectator) drop(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}
