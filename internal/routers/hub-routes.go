package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/handlers"
	hub_handler "github.com/deshmukhatharva11/innovation-hub-sub002/internal/handlers/hub-handler"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(wsHub)
	r.Route("/api/v1", func(r chi.Router) {
		// Health stats
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))

		// Room routes
		r.Route("/rooms/{room}", func(r chi.Router) {
			r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetRoomStats))
		})

		// User routes
		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/status", handlers.WrapHandler(hubHandler.HandleGetUserStatus))
			r.Post("/disconnect", handlers.WrapHandler(hubHandler.HandleDisconnectUser))
		})
	})
}
