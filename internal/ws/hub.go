package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"sketchparty/internal/lobby"
)

// Hub tracks live connections per lobby code and fans events out to them.
// It is the one lobby.Broadcaster implementation in the binary.
type Hub struct {
	mu      sync.RWMutex
	lobbies map[string]map[string]*Client // code -> playerID -> client
}

func NewHub() *Hub {
	return &Hub{lobbies: make(map[string]map[string]*Client)}
}

func (h *Hub) add(code string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lobbies[code] == nil {
		h.lobbies[code] = make(map[string]*Client)
	}
	h.lobbies[code][c.playerID] = c
}

func (h *Hub) remove(code, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.lobbies[code]
	delete(clients, playerID)
	if len(clients) == 0 {
		delete(h.lobbies, code)
	}
}

// disconnect force-closes one member's connection (kicks).
func (h *Hub) disconnect(code, playerID string) {
	h.mu.RLock()
	c := h.lobbies[code][playerID]
	h.mu.RUnlock()
	if c != nil {
		c.cleanup()
	}
}

// ForLobby returns the Broadcaster view of one lobby's connections.
func (h *Hub) ForLobby(code string) lobby.Broadcaster {
	return &lobbyChannel{hub: h, code: code}
}

// lobbyChannel adapts the hub to lobby.Broadcaster for a single code.
// All sends are non-blocking: the engine calls these with the lobby locked.
type lobbyChannel struct {
	hub  *Hub
	code string
}

func encode(event string, data any) ([]byte, bool) {
	payload, err := json.Marshal(data)
	if err != nil {
		zap.S().Errorf("ws: marshal %s payload: %v", event, err)
		return nil, false
	}
	msg, err := json.Marshal(WSMessage{Type: event, Data: payload})
	if err != nil {
		zap.S().Errorf("ws: marshal %s envelope: %v", event, err)
		return nil, false
	}
	return msg, true
}

func (lc *lobbyChannel) each(fn func(*Client)) {
	lc.hub.mu.RLock()
	clients := make([]*Client, 0, len(lc.hub.lobbies[lc.code]))
	for _, c := range lc.hub.lobbies[lc.code] {
		clients = append(clients, c)
	}
	lc.hub.mu.RUnlock()

	for _, c := range clients {
		fn(c)
	}
}

func (lc *lobbyChannel) Broadcast(event string, data any) {
	msg, ok := encode(event, data)
	if !ok {
		return
	}
	lc.each(func(c *Client) { c.enqueue(msg) })
}

func (lc *lobbyChannel) To(playerID string, event string, data any) {
	msg, ok := encode(event, data)
	if !ok {
		return
	}
	lc.each(func(c *Client) {
		if c.playerID == playerID {
			c.enqueue(msg)
		}
	})
}

func (lc *lobbyChannel) Except(playerID string, event string, data any) {
	msg, ok := encode(event, data)
	if !ok {
		return
	}
	lc.each(func(c *Client) {
		if c.playerID != playerID {
			c.enqueue(msg)
		}
	})
}
