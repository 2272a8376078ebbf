package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"graphbrowser/application/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Hub fans view messages out to the websocket clients subscribed to each
// session. It is the ViewPublisher the session layer pushes refresh scopes,
// stats, and interaction targets through.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

var _ ports.ViewPublisher = (*Hub)(nil)

// client's send channel is never closed; done signals shutdown instead,
// so publishers racing a disconnect cannot send on a closed channel. done
// is closed exactly once, by whoever removes the client from the hub map.
type client struct {
	conn *websocket.Conn
	send chan ports.ViewMessage
	done chan struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]bool),
	}
}

// Publish delivers a message to every client subscribed to the session.
// Clients too slow to drain their buffer are dropped rather than allowed to
// block the session loop.
func (h *Hub) Publish(sessionID string, msg ports.ViewMessage) {
	h.mu.RLock()
	subscribers := make([]*client, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	for _, c := range subscribers {
		select {
		case c.send <- msg:
		case <-c.done:
		default:
			h.logger.Warn("dropping slow websocket subscriber",
				zap.String("session_id", sessionID))
			h.unsubscribe(sessionID, c)
		}
	}
}

// Subscribe upgrades the request and streams the session's view messages
// until the client disconnects.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan ports.ViewMessage, sendBufferSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*client]bool)
	}
	h.clients[sessionID][c] = true
	h.mu.Unlock()

	go h.writePump(sessionID, c)
	go h.readPump(sessionID, c)
}

// CloseSession disconnects every client subscribed to the session.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	subscribers := h.clients[sessionID]
	delete(h.clients, sessionID)
	for c := range subscribers {
		close(c.done)
	}
	h.mu.Unlock()
}

func (h *Hub) unsubscribe(sessionID string, c *client) {
	h.mu.Lock()
	if subscribers, ok := h.clients[sessionID]; ok && subscribers[c] {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(h.clients, sessionID)
		}
		close(c.done)
	}
	h.mu.Unlock()
}

// writePump streams messages to one client and keeps the connection alive
// with pings. It owns all writes on the connection.
func (h *Hub) writePump(sessionID string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				h.unsubscribe(sessionID, c)
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unsubscribe(sessionID, c)
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is detecting disconnects and
// answering pings. Interactions arrive over the REST API, not the socket.
func (h *Hub) readPump(sessionID string, c *client) {
	defer h.unsubscribe(sessionID, c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
