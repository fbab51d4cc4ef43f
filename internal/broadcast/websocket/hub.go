// Package websocket relays combat events to browser clients subscribed to a
// game.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/gorilla/websocket"
)

const (
	defaultSendBuffer = 64
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = pongWait * 9 / 10
)

// Config holds hub settings
type Config struct {
	// AllowedOrigins empty allows same-host requests only
	AllowedOrigins []string
	SendBuffer     int
}

type client struct {
	conn   *websocket.Conn
	gameID string
	send   chan []byte
}

// Hub tracks connections per game and fans events out to them
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	buffer   int
}

// NewHub creates a hub
func NewHub(cfg *Config) *Hub {
	if cfg == nil {
		cfg = &Config{}
	}
	buffer := cfg.SendBuffer
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}

	h := &Hub{
		clients: make(map[string]map[*client]struct{}),
		buffer:  buffer,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(cfg.AllowedOrigins) == 0 {
				return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
			}
			return slices.Contains(cfg.AllowedOrigins, origin)
		},
	}
	return h
}

// ServeHTTP upgrades /ws?game_id=... and streams that game's events until
// the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		http.Error(w, "game_id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Gateway: websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, gameID: gameID, send: make(chan []byte, h.buffer)}
	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.gameID] == nil {
		h.clients[c.gameID] = make(map[*client]struct{})
	}
	h.clients[c.gameID][c] = struct{}{}
	log.Printf("Gateway: client %s joined game %s", c.conn.RemoteAddr(), c.gameID)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	game := h.clients[c.gameID]
	if _, ok := game[c]; !ok {
		return
	}
	delete(game, c)
	if len(game) == 0 {
		delete(h.clients, c.gameID)
	}
	close(c.send)
}

// readPump only watches for close and pong frames. Clients do not send
// actions over this socket.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast queues the batch for every client of the game. A client whose
// queue is full is disconnected rather than blocking the others.
func (h *Hub) Broadcast(ctx context.Context, gameID string, evs []events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payloads := make([][]byte, 0, len(evs))
	for _, e := range evs {
		data, err := json.Marshal(e)
		if err != nil {
			return dnderr.Wrapf(err, "failed to encode event %s", e.Kind)
		}
		payloads = append(payloads, data)
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients[gameID] {
		if !c.enqueue(payloads) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("Gateway: dropping slow client %s from game %s", c.conn.RemoteAddr(), gameID)
		h.unregister(c)
	}
	return nil
}

func (c *client) enqueue(payloads [][]byte) bool {
	for _, data := range payloads {
		select {
		case c.send <- data:
		default:
			return false
		}
	}
	return true
}

// Relay adapts the hub to a pub/sub handler
func (h *Hub) Relay(gameID string, ev events.Event) {
	if err := h.Broadcast(context.Background(), gameID, []events.Event{ev}); err != nil {
		log.Printf("Gateway: failed to relay %s for game %s: %v", ev.Kind, gameID, err)
	}
}

// Clients counts the connections watching a game
func (h *Hub) Clients(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[gameID])
}
