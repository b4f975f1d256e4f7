// Package ws streams gym activity (check-ins, billing outcomes) to owners over WebSocket.
package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is one message on a gym's activity feed.
type Event struct {
	Type  string      `json:"type"`
	GymID uint        `json:"gym_id"`
	At    time.Time   `json:"at"`
	Data  interface{} `json:"data,omitempty"`
}

// Client is a single feed connection.
type Client struct {
	UserID uint
	GymID  uint
	Send   chan []byte
	hub    *Hub
	mu     sync.Mutex
	closed bool
}

func NewClient(userID, gymID uint) *Client {
	return &Client{UserID: userID, GymID: gymID, Send: make(chan []byte, 64)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	close(c.Send)
}

// Hub fans events out to the clients watching each gym.
type Hub struct {
	mu    sync.RWMutex
	byGym map[uint]map[*Client]struct{}
	now   func() time.Time
}

func NewHub() *Hub {
	return &Hub{byGym: make(map[uint]map[*Client]struct{}), now: time.Now}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	if h.byGym[c.GymID] == nil {
		h.byGym[c.GymID] = make(map[*Client]struct{})
	}
	h.byGym[c.GymID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.byGym[c.GymID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byGym, c.GymID)
		}
	}
}

// Publish sends an event to every client of the gym. Slow clients drop messages.
func (h *Hub) Publish(gymID uint, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, GymID: gymID, At: h.now().UTC(), Data: data})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byGym[gymID] {
		select {
		case c.Send <- payload:
		default:
		}
	}
}

func (h *Hub) ClientCount(gymID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byGym[gymID])
}
