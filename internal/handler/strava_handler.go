package handler

import (
	"errors"
	"net/http"
	"net/url"

	"gearlog-server/internal/service"
	"gearlog-server/internal/strava"
	"gearlog-server/internal/websocket"
	"gearlog-server/pkg/response"

	"github.com/google/uuid"
)

type StravaHandler struct {
	client *strava.Client
	tokens *service.TokenService
	sync   *service.SyncService
	hub    *websocket.Hub
}

func NewStravaHandler(client *strava.Client, tokens *service.TokenService, sync *service.SyncService, hub *websocket.Hub) *StravaHandler {
	return &StravaHandler{
		client: client,
		tokens: tokens,
		sync:   sync,
		hub:    hub,
	}
}

func (h *StravaHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if !h.client.Configured() {
		response.InternalError(w, "Strava API credentials not configured. Please set STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET.")
		return
	}

	state := uuid.New().String()
	response.OK(w, map[string]string{"authUrl": h.client.AuthorizationURL(state)})
}

func (h *StravaHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// The provider reports user denial through an error parameter.
	if errParam := q.Get("error"); errParam != "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape(errParam), http.StatusFound)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Redirect(w, r, "/?error=no_code", http.StatusFound)
		return
	}

	if err := h.tokens.Exchange(code); err != nil {
		http.Redirect(w, r, "/?error=token_exchange_failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, "/?auth=success", http.StatusFound)
}

func (h *StravaHandler) Token(w http.ResponseWriter, r *http.Request) {
	accessToken, err := h.tokens.AccessToken()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoToken):
			response.NotFound(w, "No token found. Please authenticate first.")
		case errors.Is(err, service.ErrRefreshFailed):
			response.Unauthorized(w, "Token expired and refresh failed. Please re-authenticate.")
		default:
			response.InternalError(w, "Failed to get token")
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"access_token": accessToken,
		"hasToken":     true,
	})
}

func (h *StravaHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.sync.Sync()
	if err != nil {
		if errors.Is(err, service.ErrNoToken) {
			response.Unauthorized(w, "No token found. Please authenticate first.")
			return
		}

		var apiErr *strava.APIError
		if errors.As(err, &apiErr) {
			response.ErrorDetails(w, http.StatusInternalServerError, "Failed to sync activities", apiErr.Body)
			return
		}
		response.ErrorDetails(w, http.StatusInternalServerError, "Failed to sync activities", err.Error())
		return
	}

	h.hub.Broadcast(websocket.EventActivitiesUpdated)
	h.hub.Broadcast(websocket.EventStatsUpdated)
	response.OK(w, result)
}
