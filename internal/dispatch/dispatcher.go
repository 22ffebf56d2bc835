package dispatch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/entity"
	app_error "github.com/deshmukhatharva11/innovation-hub-sub002/internal/errors"
	conversation_repo "github.com/deshmukhatharva11/innovation-hub-sub002/internal/repo/conversation"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

const previewLimit = 120

// Dispatcher authorizes, persists and fans out a single chat message. The
// store is the sole source of truth for durable state; the hub is only the
// delivery fabric.
type Dispatcher struct {
	Store conversation_repo.ConversationRepoContract
	Hub   *websocket.Hub
}

func NewDispatcher(store conversation_repo.ConversationRepoContract, hub *websocket.Hub) *Dispatcher {
	return &Dispatcher{Store: store, Hub: hub}
}

// SendResult reports a successful send. Degraded means the message was
// persisted and broadcast but the unread/preview bookkeeping failed; the
// message is never unwound for that.
type SendResult struct {
	Message  *entity.Message
	Degraded bool
}

func (d *Dispatcher) SendMessage(ctx context.Context, sender *websocket.Client, conversationID uint, body, msgType string) (*SendResult, *app_error.AppError) {
	conv, appErr := d.Store.FindConversation(ctx, conversationID)
	if appErr != nil {
		return nil, appErr
	}

	// Resolve the sender's participant slot once, then a single equality
	// check against the slot's registered identity.
	slot := entity.ResolveSlot(sender.Role)
	if slot == entity.SlotNone || conv.ParticipantFor(slot) != sender.UserID {
		log.Warn().
			Str("userID", sender.UserID).
			Str("role", sender.Role).
			Uint("conversationID", conversationID).
			Msg("dispatch: send attempt by non-participant")
		return nil, app_error.Forbidden("not a participant of this conversation")
	}

	msg := &entity.Message{
		ConversationID: conv.ID,
		SenderID:       sender.UserID,
		SenderRole:     slot.DisplayRole(),
		Body:           body,
		Type:           msgType,
	}
	if appErr := d.Store.CreateMessage(ctx, msg); appErr != nil {
		return nil, appErr
	}

	// Best-effort bookkeeping after the message is durable. A failure here
	// degrades the send (unread badge may undercount) but never unwinds it.
	now := time.Now()
	preview := truncatePreview(body)
	degraded := false
	if appErr := d.Store.TouchConversation(ctx, conv.ID, preview, now); appErr != nil {
		degraded = true
		log.Error().Err(appErr).Uint("conversationID", conv.ID).Msg("dispatch: failed to touch conversation")
	}
	if appErr := d.Store.IncrementUnread(ctx, conv.ID, slot.Other()); appErr != nil {
		degraded = true
		log.Error().Err(appErr).Uint("conversationID", conv.ID).Msg("dispatch: failed to increment unread counter")
	}

	room := websocket.ConversationRoom(conv.ID)
	d.Hub.BroadcastRoom(room, websocket.OutgoingEvent{
		Event: websocket.EvtNewMessage,
		Data:  msg,
	})
	d.Hub.BroadcastRoom(room, websocket.OutgoingEvent{
		Event: websocket.EvtConversationUpdated,
		Data: map[string]any{
			"conversationId": conv.ID,
			"preview":        preview,
			"lastMessageAt":  now,
		},
	})

	return &SendResult{Message: msg, Degraded: degraded}, nil
}

func truncatePreview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit])
}
