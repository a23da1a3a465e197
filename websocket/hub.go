// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeImportProgress MessageType = "IMPORT_PROGRESS"
	MessageTypeImportDone     MessageType = "IMPORT_DONE"
	MessageTypeError          MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Hub  *Hub
	Send chan WebSocketMessage
}

// Hub fans import progress updates out to every connected admin client.
// Slow clients are dropped rather than allowed to block the broadcast.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (h *Hub) broadcastToAll(message WebSocketMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// Send buffer full; the client is too slow, let readPump clean up.
		}
	}
}

// BroadcastImportProgress pushes one progress snapshot to every client.
// Safe to call from any goroutine; never blocks the caller.
func (h *Hub) BroadcastImportProgress(payload interface{}) {
	h.broadcastMessage(WebSocketMessage{
		Type:      MessageTypeImportProgress,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// BroadcastImportDone signals that an import batch finished dispatching.
func (h *Hub) BroadcastImportDone(payload interface{}) {
	h.broadcastMessage(WebSocketMessage{
		Type:      MessageTypeImportDone,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

func (h *Hub) broadcastMessage(message WebSocketMessage) {
	select {
	case h.broadcast <- message:
	default:
		// Broadcast queue full; drop rather than stall the import pipeline.
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
