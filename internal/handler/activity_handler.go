package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gearlog-server/internal/repository"
	"gearlog-server/internal/service"
	"gearlog-server/pkg/response"

	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	activities *service.ActivityService
	calendar   *service.CalendarService
}

func NewActivityHandler(activities *service.ActivityService, calendar *service.CalendarService) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		calendar:   calendar,
	}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.activities.List()
	if err != nil {
		response.InternalError(w, "Failed to fetch activities")
		return
	}
	response.OK(w, views)
}

func (h *ActivityHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	months, err := h.calendar.BuildCalendar()
	if err != nil {
		response.InternalError(w, "Failed to build calendar")
		return
	}
	response.OK(w, months)
}

func (h *ActivityHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.activities.Totals()
	if err != nil {
		response.InternalError(w, "Failed to fetch stats")
		return
	}
	response.OK(w, totals)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid activity id")
		return
	}

	detail, err := h.activities.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Activity not found")
			return
		}
		response.InternalError(w, "Failed to fetch activity")
		return
	}
	response.OK(w, detail)
}
