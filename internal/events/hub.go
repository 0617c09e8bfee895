package events

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

// Event is the wire envelope for every outbound signal.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// FeedFailure is the payload of a feed_failed event.
type FeedFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub fans the core's outbound signals out to websocket subscribers
// (the rendering layer). Subscribers are write-only: inbound frames
// are drained and discarded.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debug("Renderer subscribed", map[string]interface{}{
				"subscribers": h.Subscribers(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow subscriber, drop it rather than block the hub.
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) emit(eventType string, payload interface{}) {
	message, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		logger.Error("Failed to encode event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}
	select {
	case h.broadcast <- message:
	default:
		logger.Warn("Event dropped, broadcast queue full", map[string]interface{}{
			"type": eventType,
		})
	}
}

// CartChanged implements Notifier.
func (h *Hub) CartChanged(cart model.Cart) {
	h.emit(EventCartChanged, cart)
}

// CatalogChanged implements Notifier.
func (h *Hub) CatalogChanged(products []model.Product) {
	h.emit(EventCatalogChanged, products)
}

// FeedFailed implements Notifier.
func (h *Hub) FeedFailed(code string, message string) {
	h.emit(EventFeedFailed, FeedFailure{Code: code, Message: message})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are the router's concern (CORS config).
		return true
	},
}

// ServeWS upgrades an HTTP request into an event subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", err, nil)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}
