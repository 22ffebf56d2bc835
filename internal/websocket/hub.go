package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub owns the two shared in-memory structures of the messaging core: the
// connection registry (presence) and the room index (fan-out scoping). It is
// constructed once and injected wherever connections are handled; there is no
// ambient global state.
type Hub struct {
	registry *Registry
	rooms    *Rooms

	ctx    context.Context
	cancel context.CancelFunc

	stats   HubStats
	statsMu sync.RWMutex

	cleanupTicker *time.Ticker
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		registry:      NewRegistry(),
		rooms:         NewRooms(),
		ctx:           ctx,
		cancel:        cancel,
		stats:         HubStats{LastReset: time.Now()},
		cleanupTicker: time.NewTicker(1 * time.Minute),
	}

	go hub.cleanupRoutine()

	return hub
}

func (h *Hub) Registry() *Registry { return h.registry }
func (h *Hub) Rooms() *Rooms       { return h.rooms }

// Attach registers an authenticated connection and auto-joins its personal
// and role rooms. Conversation rooms are joined only on explicit request.
func (h *Hub) Attach(c *Client) {
	c.onClose = h.detach
	h.registry.Register(c)
	h.rooms.Join(c, UserRoom(c.UserID))
	h.rooms.Join(c, RoleRoom(c.Role))

	h.updateStats(func(s *HubStats) {
		s.TotalConnections++
	})

	log.Info().Str("clientID", c.ID).Str("userID", c.UserID).Str("role", c.Role).Msg("ws: client attached")
}

// detach runs exactly once per connection. Registry unregister happens before
// room cleanup; the offline event fires only when the last connection of the
// identity is gone.
func (h *Hub) detach(c *Client) {
	wasLast := h.registry.Unregister(c)
	h.rooms.LeaveAll(c)

	if wasLast {
		h.BroadcastAll(OutgoingEvent{
			Event: EvtUserOffline,
			Data:  map[string]any{"userId": c.UserID},
		})
	}

	log.Info().Str("clientID", c.ID).Str("userID", c.UserID).Bool("wentOffline", wasLast).Msg("ws: client detached")
}

// JoinConversation subscribes the connection to a conversation room.
func (h *Hub) JoinConversation(c *Client, conversationID uint) {
	h.rooms.Join(c, ConversationRoom(conversationID))
	log.Debug().Str("clientID", c.ID).Uint("conversationID", conversationID).Msg("ws: joined conversation room")
}

func (h *Hub) LeaveConversation(c *Client, conversationID uint) {
	h.rooms.Leave(c, ConversationRoom(conversationID))
}

// BroadcastRoom delivers an event to every connection currently in the room.
// A slow consumer never blocks dispatch: its frame is dropped and the
// connection is closed asynchronously.
func (h *Hub) BroadcastRoom(room string, ev OutgoingEvent) {
	h.broadcast(h.rooms.Members(room, nil), ev, true)
}

// BroadcastRoomExcept is the typing-indicator variant: everyone in the room
// but the originating connection.
func (h *Hub) BroadcastRoomExcept(room string, ev OutgoingEvent, except *Client) {
	h.broadcast(h.rooms.Members(room, except), ev, true)
}

// BroadcastAll delivers an event to every registered connection. Used for
// global presence signals; safe to drop for slow consumers.
func (h *Hub) BroadcastAll(ev OutgoingEvent) {
	h.broadcast(h.registry.All(), ev, false)
}

func (h *Hub) broadcast(targets []*Client, ev OutgoingEvent, evictSlow bool) {
	if len(targets) == 0 {
		return
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	data, err := ev.encode()
	if err != nil {
		log.Error().Err(err).Str("event", ev.Event).Msg("ws: failed to marshal broadcast")
		return
	}

	sent := 0
	for _, c := range targets {
		if !c.IsActive() {
			continue
		}
		if c.Enqueue(data) {
			sent++
			continue
		}
		if c.IsActive() {
			log.Warn().Str("clientID", c.ID).Str("event", ev.Event).Msg("ws: slow consumer, dropping frame")
			if evictSlow {
				go c.Close()
			}
		}
	}

	h.updateStats(func(s *HubStats) {
		s.EventsSent += int64(sent)
	})
}

func (h *Hub) Stats() HubStats {
	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	stats.TotalRooms = h.rooms.RoomCount()
	stats.TotalClients = h.registry.ConnectionCount()
	return stats
}

func (h *Hub) RoomStats(room string) map[string]any {
	members := h.rooms.Members(room, nil)

	uniqueUsers := make(map[string]struct{})
	active := 0
	for _, c := range members {
		if c.IsActive() {
			active++
			uniqueUsers[c.UserID] = struct{}{}
		}
	}

	return map[string]any{
		"room":               room,
		"exists":             len(members) > 0,
		"total_connections":  len(members),
		"active_connections": active,
		"unique_users":       len(uniqueUsers),
	}
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

func (h *Hub) cleanupRoutine() {
	defer h.cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.cleanupTicker.C:
			h.evictInactive()
		}
	}
}

func (h *Hub) evictInactive() {
	inactiveThreshold := 2 * time.Minute
	now := time.Now()

	var toClose []*Client
	for _, c := range h.registry.All() {
		if !c.IsActive() || now.Sub(c.GetLastSeen()) > inactiveThreshold {
			toClose = append(toClose, c)
		}
	}

	for _, c := range toClose {
		log.Info().Str("clientID", c.ID).Str("userID", c.UserID).Msg("ws: evicting inactive client")
		c.Close()
	}
}

// Close gracefully shuts down the hub and every connection it tracks.
func (h *Hub) Close() {
	log.Info().Msg("ws: shutting down hub")
	h.cancel()

	clients := h.registry.All()
	for _, c := range clients {
		c.Close()
	}

	log.Info().Int("clients", len(clients)).Msg("ws: hub shutdown completed")
}
