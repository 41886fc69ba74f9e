package socket

import (
	"encoding/json"
	"pupshare/backend/global"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Event is pushed to every open connection of a user.
type Event struct {
	Type      string    `json:"type"`
	PhotoID   string    `json:"photoId,omitempty"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventPhotoApproved = "photo.approved"
	EventPhotoRejected = "photo.rejected"
	EventPhotoDeleted  = "photo.deleted"
)

// Client is one websocket connection of an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	UserID string
}

// Hub tracks open connections by user id.
type Hub struct {
	mu     sync.RWMutex
	byUser map[string]map[*Client]struct{}
}

func NewHub() *Hub { return &Hub{byUser: make(map[string]map[*Client]struct{})} }

func (h *Hub) Register(userID string, conn *websocket.Conn) *Client {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), UserID: userID}
	h.mu.Lock()
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*Client]struct{})
	}
	h.byUser[userID][c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.byUser[c.UserID]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
			if len(clients) == 0 {
				delete(h.byUser, c.UserID)
			}
		}
	}
	h.mu.Unlock()
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	_, ok := h.byUser[userID]
	h.mu.RUnlock()
	return ok
}

// Notify queues ev for every connection of userID. Slow connections whose
// buffer is full drop the event rather than block the caller.
func (h *Hub) Notify(userID string, ev Event) {
	if userID == "" {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		global.Logger.Error().Err(err).Str("type", ev.Type).Msg("marshal socket event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byUser[userID] {
		select {
		case c.send <- b:
		default:
			global.Logger.Warn().Str("user", userID).Str("type", ev.Type).Msg("socket buffer full, dropping event")
		}
	}
}

// ReadPump discards client frames and keeps the read deadline fresh; it
// unregisters the client when the connection ends.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				global.Logger.Debug().Err(err).Str("user", c.UserID).Msg("socket closed")
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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
