package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/middleware"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

func NewRouter(hub *websocket.Hub, wsHandler *websocket.WSHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	// Realtime endpoint; auth happens inside the handshake.
	r.Get("/ws", wsHandler.ServeWS)

	HubRouter(r, hub)

	return r
}
