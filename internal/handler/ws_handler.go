package handler

import (
	"log"
	"net/http"

	"gearlog-server/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *websocket.Hub
	upgrader ws.Upgrader
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and subscribes the client to the
// change feed.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(uuid.New().String(), conn, h.hub)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
