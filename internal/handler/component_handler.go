package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gearlog-server/internal/domain"
	"gearlog-server/internal/repository"
	"gearlog-server/internal/service"
	"gearlog-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type ComponentHandler struct {
	components *service.ComponentService
	validate   *validator.Validate
}

func NewComponentHandler(components *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{
		components: components,
		validate:   validator.New(),
	}
}

func (h *ComponentHandler) ListBikes(w http.ResponseWriter, r *http.Request) {
	bikes, err := h.components.ListBikes()
	if err != nil {
		response.InternalError(w, "Failed to fetch bikes")
		return
	}
	response.OK(w, bikes)
}

func (h *ComponentHandler) CreateBike(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "Bike name is required")
		return
	}

	bike, err := h.components.CreateBike(&req)
	if err != nil {
		response.InternalError(w, "Failed to create bike")
		return
	}
	response.OK(w, bike)
}

func (h *ComponentHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	bikeID, ok := pathID(w, r, "bikeId")
	if !ok {
		return
	}

	components, err := h.components.ListComponents(bikeID)
	if err != nil {
		response.InternalError(w, "Failed to fetch components")
		return
	}
	response.OK(w, components)
}

func (h *ComponentHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	bikeID, ok := pathID(w, r, "bikeId")
	if !ok {
		return
	}

	var req domain.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "Component name and type are required")
		return
	}

	component, err := h.components.CreateComponent(bikeID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create component")
		return
	}
	response.OK(w, component)
}

func (h *ComponentHandler) LinkActivities(w http.ResponseWriter, r *http.Request) {
	bikeID, ok := pathID(w, r, "bikeId")
	if !ok {
		return
	}
	componentID, ok := pathID(w, r, "componentId")
	if !ok {
		return
	}

	var req domain.LinkActivitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "activity_ids must be an array")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "activity_ids must be an array")
		return
	}

	linked, err := h.components.LinkActivities(bikeID, componentID, req.ActivityIDs)
	if err != nil {
		response.InternalError(w, "Failed to link activities")
		return
	}
	response.OK(w, domain.LinkActivitiesResponse{Success: true, Linked: linked})
}

func (h *ComponentHandler) ComponentDetail(w http.ResponseWriter, r *http.Request) {
	bikeID, ok := pathID(w, r, "bikeId")
	if !ok {
		return
	}
	componentID, ok := pathID(w, r, "componentId")
	if !ok {
		return
	}

	detail, err := h.components.ComponentDetail(bikeID, componentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Component not found")
			return
		}
		response.InternalError(w, "Failed to fetch component")
		return
	}
	response.OK(w, detail)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}
