// Package websocket pushes change notifications to connected UI clients so
// open pages can refresh after a sync or a recorded replacement.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event names broadcast to clients.
const (
	EventActivitiesUpdated = "activities_updated"
	EventStatsUpdated      = "stats_updated"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

type Hub struct {
	clients      map[string]*Client
	clientsMutex sync.RWMutex
	Register     chan *Client
	Unregister   chan *Client
	writeWait    time.Duration
	pongWait     time.Duration
	pingPeriod   time.Duration
}

func NewHub(writeWait, pongWait, pingPeriod time.Duration) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		writeWait:  writeWait,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	h.clients[client.ID] = client
	log.Printf("websocket client registered: %s", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
		log.Printf("websocket client unregistered: %s", client.ID)
	}
}

// Broadcast pushes an event to every connected client. Clients whose send
// buffer is full are dropped.
func (h *Hub) Broadcast(eventType string) {
	payload, err := json.Marshal(Event{Type: eventType, Timestamp: time.Now()})
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	for id, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("websocket client %s send buffer full, dropping", id)
			go func(c *Client) { h.Unregister <- c }(client)
		}
	}
}

// ConnectionCount reports the number of connected clients.
func (h *Hub) ConnectionCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}
