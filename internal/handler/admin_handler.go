package handler

import (
	"log"
	"net/http"

	"gearlog-server/internal/service"
	"gearlog-server/internal/websocket"
	"gearlog-server/pkg/response"
)

type AdminHandler struct {
	reset *service.ResetService
	hub   *websocket.Hub
}

func NewAdminHandler(reset *service.ResetService, hub *websocket.Hub) *AdminHandler {
	return &AdminHandler{reset: reset, hub: hub}
}

// Reset wipes all stored data.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log.Printf("resetting site: deleting all data")

	if err := h.reset.ResetAll(); err != nil {
		response.ErrorDetails(w, http.StatusInternalServerError, "Failed to reset site", err.Error())
		return
	}

	h.hub.Broadcast(websocket.EventActivitiesUpdated)
	h.hub.Broadcast(websocket.EventStatsUpdated)
	response.OK(w, map[string]interface{}{
		"success": true,
		"message": "Site reset successfully. All data has been deleted.",
	})
}
