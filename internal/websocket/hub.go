package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
)

// Event types pushed to operator dashboards.
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
)

// Event is the wire envelope for dashboard pushes.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Hub fans order events out to connected operator clients. It satisfies the
// order service's notifier interface.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run pumps registrations and broadcasts until Stop is called. Call it on its
// own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logger.Debug("Dashboard client connected", map[string]interface{}{
				"user_id": client.userID,
				"clients": count,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logger.Debug("Dashboard client disconnected", map[string]interface{}{
				"user_id": client.userID,
				"clients": count,
			})

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer, drop the connection rather than block
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every client.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) publish(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		logger.Error("Failed to marshal dashboard event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}
	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Dashboard broadcast buffer full, event dropped", map[string]interface{}{
			"type": eventType,
		})
	}
}

func (h *Hub) NotifyOrderCreated(order *model.Order) {
	h.publish(EventOrderCreated, order)
}

func (h *Hub) NotifyOrderUpdated(order *model.Order) {
	h.publish(EventOrderUpdated, order)
}
