package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents an admin dashboard WebSocket connection
type Connection struct {
	Username string
	Send     chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(username string) *Connection {
	return &Connection{
		Username: username,
		Send:     make(chan []byte, 256),
	}
}

// Hub fans dashboard events out to every connected admin. It runs until the
// context given to NewHub is cancelled or Close is called.
type Hub struct {
	conns map[*Connection]struct{}

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte

	cancel context.CancelFunc
	done   chan struct{}
	logger *zap.Logger

	closeOnce sync.Once
}

// NewHub creates a hub and starts its run loop
func NewHub(ctx context.Context, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(ctx)
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		cancel:     cancel,
		done:       make(chan struct{}),
		logger:     logger,
	}
	go h.run(ctx)
	return h
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			return

		case conn := <-h.register:
			h.conns[conn] = struct{}{}
			h.logger.Info("admin connected", zap.String("username", conn.Username), zap.Int("connections", len(h.conns)))

		case conn := <-h.unregister:
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.logger.Info("admin disconnected", zap.String("username", conn.Username))
			}

		case data := <-h.broadcast:
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
		}
	}
}

// Register adds a connection. After the hub stopped the connection is closed immediately.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// BroadcastToAdmins sends an event to every admin (implements service.Broadcaster)
func (h *Hub) BroadcastToAdmins(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("broadcast payload encoding failed", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg, err := json.Marshal(&Message{Type: MessageType(msgType), Payload: data})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("type", msgType))
	}
}

// Close stops the run loop and waits for it to exit
func (h *Hub) Close() {
	h.closeOnce.Do(h.cancel)
	<-h.done
}
