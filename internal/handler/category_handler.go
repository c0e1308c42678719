package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/service"
	"gearlog-server/internal/websocket"
	"gearlog-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type CategoryHandler struct {
	stats        *service.StatsService
	replacements *service.ReplacementService
	hub          *websocket.Hub
	validate     *validator.Validate
}

func NewCategoryHandler(stats *service.StatsService, replacements *service.ReplacementService, hub *websocket.Hub) *CategoryHandler {
	return &CategoryHandler{
		stats:        stats,
		replacements: replacements,
		hub:          hub,
		validate:     validator.New(),
	}
}

func (h *CategoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ComputeAllStats()
	if err != nil {
		response.InternalError(w, "Failed to fetch category stats")
		return
	}
	response.OK(w, stats)
}

func (h *CategoryHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.replacements.History()
	if err != nil {
		response.InternalError(w, "Failed to fetch replacement history")
		return
	}
	response.OK(w, history)
}

func (h *CategoryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req domain.RecordReplacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.replacements.Record(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			response.BadRequest(w, "Invalid category")
			return
		}
		response.InternalError(w, "Failed to record replacement")
		return
	}

	h.hub.Broadcast(websocket.EventActivitiesUpdated)
	h.hub.Broadcast(websocket.EventStatsUpdated)
	response.OK(w, resp)
}

func (h *CategoryHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	if err := h.replacements.ResetHistory(category); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			response.BadRequest(w, "Invalid category")
			return
		}
		response.InternalError(w, "Failed to reset history")
		return
	}

	h.hub.Broadcast(websocket.EventStatsUpdated)
	response.OK(w, map[string]bool{"success": true})
}
