// Package websocket pushes dashboard updates (lineup changes, substitution
// impacts, selection changes) to connected clients.
package websocket

import (
	"net/http"
	"sync"
	"time"

	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one connected dashboard page.
type Client struct {
	SessionID string
	conn      *websocket.Conn
	send      chan []byte
	hub       *Hub
}

// Message is the envelope pushed to clients.
type Message struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Hub fans session update messages out to subscribed clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	sessions   map[string][]*Client
	mu         sync.RWMutex
	logger     *logrus.Logger
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewHub creates a websocket hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		sessions:   make(map[string][]*Client),
		logger:     logger,
	}
}

// Run handles client registration and broadcast fan-out.
func (h *Hub) Run() {
	h.logger.Info("Starting WebSocket hub")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if client.SessionID != "" {
				h.sessions[client.SessionID] = append(h.sessions[client.SessionID], client)
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				if client.SessionID != "" {
					remaining := h.sessions[client.SessionID][:0]
					for _, c := range h.sessions[client.SessionID] {
						if c != client {
							remaining = append(remaining, c)
						}
					}
					if len(remaining) == 0 {
						delete(h.sessions, client.SessionID)
					} else {
						h.sessions[client.SessionID] = remaining
					}
				}
			}
			h.mu.Unlock()

		case payload := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer, drop the message.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastSession pushes a typed message to clients of one session.
func (h *Hub) BroadcastSession(sessionID, msgType string, data interface{}) {
	payload, err := json.Marshal(Message{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		h.logger.WithError(err).Warn("Failed to marshal websocket message")
		return
	}

	h.mu.RLock()
	clients := h.sessions[sessionID]
	for _, client := range clients {
		select {
		case client.send <- payload:
		default:
		}
	}
	h.mu.RUnlock()
}

// HandleWebSocket upgrades the connection and subscribes it to the session
// given by the "session" query parameter.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	client := &Client{
		SessionID: c.Query("session"),
		conn:      conn,
		send:      make(chan []byte, 16),
		hub:       h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
