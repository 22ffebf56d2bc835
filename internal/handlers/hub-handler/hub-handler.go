package hub_handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	app_error "github.com/deshmukhatharva11/innovation-hub-sub002/internal/errors"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/handlers"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

// HubHandler exposes the hub's operational surface over HTTP: health, stats
// and per-user presence, for the admin dashboard and for ops tooling.
type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{Hub: hub}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.Stats()
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("hub stats", stats, r.Header.Get("X-Request-ID")))
	return nil
}

func (h *HubHandler) HandleGetRoomStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	room := chi.URLParam(r, "room")
	if room == "" {
		return app_error.NewAppError(http.StatusBadRequest, "room is required", "room")
	}

	stats := h.Hub.RoomStats(room)
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("room stats", stats, r.Header.Get("X-Request-ID")))
	return nil
}

func (h *HubHandler) HandleGetUserStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userId := chi.URLParam(r, "userId")
	if userId == "" {
		return app_error.NewAppError(http.StatusBadRequest, "userId is required", "userId")
	}

	data := map[string]any{
		"user_id":     userId,
		"online":      h.Hub.Registry().IsOnline(userId),
		"connections": len(h.Hub.Registry().Clients(userId)),
	}
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("user status", data, r.Header.Get("X-Request-ID")))
	return nil
}

// HandleDisconnectUser force-closes every connection the user has open.
func (h *HubHandler) HandleDisconnectUser(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userId := chi.URLParam(r, "userId")
	if userId == "" {
		return app_error.NewAppError(http.StatusBadRequest, "userId is required", "userId")
	}

	clients := h.Hub.Registry().Clients(userId)
	for _, c := range clients {
		c.Close()
	}

	data := map[string]any{
		"user_id":      userId,
		"disconnected": len(clients),
	}
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("user disconnected", data, r.Header.Get("X-Request-ID")))
	return nil
}
