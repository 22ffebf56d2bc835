package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict allowed origins once the frontend domain is fixed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventRouter consumes inbound events from established connections. Events
// from one connection arrive sequentially.
type EventRouter interface {
	Route(c *Client, raw []byte)
}

// WSHandler performs the connection handshake: authenticate, upgrade, attach
// to the hub, start the pumps. Auth failures terminate the attempt with no
// event emitted to any other party.
type WSHandler struct {
	Hub    *Hub
	Auth   AuthenticatorFunc
	Router EventRouter

	HandshakeTimeout time.Duration
	MaxConnections   int
}

func NewWSHandler(hub *Hub, auth AuthenticatorFunc, router EventRouter) *WSHandler {
	return &WSHandler{
		Hub:              hub,
		Auth:             auth,
		Router:           router,
		HandshakeTimeout: 10 * time.Second,
		MaxConnections:   10000,
	}
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.MaxConnections > 0 && h.Hub.Registry().ConnectionCount() >= h.MaxConnections {
		http.Error(w, "connection limit reached", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.HandshakeTimeout)
	defer cancel()

	res, err := h.Auth(r.WithContext(ctx))
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("ws: handshake rejected")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := NewClient(res.UserID, res.Role, conn)
	h.Hub.Attach(client)
	client.Start(h.Router.Route)
}
