package dispatch

import (
	"time"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

// Signaler broadcasts advisory presence and typing events. Nothing here
// touches the store; every signal is safe to drop under load.
type Signaler struct {
	Hub *websocket.Hub
}

func NewSignaler(hub *websocket.Hub) *Signaler {
	return &Signaler{Hub: hub}
}

// Typing notifies a conversation room that the sender started or stopped
// typing, excluding the originating connection.
func (s *Signaler) Typing(conversationID uint, c *websocket.Client, isTyping bool) {
	s.Hub.BroadcastRoomExcept(websocket.ConversationRoom(conversationID), websocket.OutgoingEvent{
		Event: websocket.EvtUserTyping,
		Data: map[string]any{
			"userId":         c.UserID,
			"conversationId": conversationID,
			"isTyping":       isTyping,
		},
	}, c)
}

// UpdateStatus broadcasts a presence status globally, last-write-wins.
func (s *Signaler) UpdateStatus(c *websocket.Client, status string) {
	s.Hub.BroadcastAll(websocket.OutgoingEvent{
		Event: websocket.EvtUserStatusUpdate,
		Data: map[string]any{
			"userId":    c.UserID,
			"status":    status,
			"timestamp": time.Now().Unix(),
		},
	})
}
