package dispatch

import (
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/entity"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type sendMessagePayload struct {
	ConversationID uint   `validate:"required"`
	Message        string `validate:"required,max=4000"`
}

type statusPayload struct {
	Status string `validate:"required,max=32"`
}

// Router routes inbound events from established connections to the
// dispatcher and the signaler. Per-event failures go back to the
// originating connection only and never crash the loop.
type Router struct {
	Dispatcher *Dispatcher
	Signaler   *Signaler
	Hub        *websocket.Hub

	validate *validator.Validate
}

func NewRouter(dispatcher *Dispatcher, signaler *Signaler, hub *websocket.Hub) *Router {
	return &Router{
		Dispatcher: dispatcher,
		Signaler:   signaler,
		Hub:        hub,
		validate:   validator.New(),
	}
}

// Route implements websocket.EventRouter. Called sequentially per connection
// from its read pump, which preserves FIFO ordering per sender.
func (rt *Router) Route(c *websocket.Client, raw []byte) {
	var ev websocket.IncomingEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		rt.sendError(c, "malformed event")
		return
	}

	switch ev.Type {
	case websocket.EvtJoinConversation:
		rt.handleJoin(c, ev)
	case websocket.EvtLeaveConversation:
		rt.handleLeave(c, ev)
	case websocket.EvtSendMessage:
		rt.handleSend(c, ev)
	case websocket.EvtTypingStart:
		rt.handleTyping(c, ev, true)
	case websocket.EvtTypingStop:
		rt.handleTyping(c, ev, false)
	case websocket.EvtUpdateStatus:
		rt.handleStatus(c, ev)
	default:
		log.Debug().Str("type", ev.Type).Str("clientID", c.ID).Msg("dispatch: unknown event type")
		rt.sendError(c, "unknown event type")
	}
}

func (rt *Router) handleJoin(c *websocket.Client, ev websocket.IncomingEvent) {
	if ev.ConversationID == 0 {
		rt.sendError(c, "conversationId is required")
		return
	}
	rt.Hub.JoinConversation(c, ev.ConversationID)
	c.SendEvent(websocket.OutgoingEvent{
		Event: websocket.EvtConversationJoined,
		Data:  map[string]any{"conversationId": ev.ConversationID},
	})
}

func (rt *Router) handleLeave(c *websocket.Client, ev websocket.IncomingEvent) {
	if ev.ConversationID == 0 {
		rt.sendError(c, "conversationId is required")
		return
	}
	rt.Hub.LeaveConversation(c, ev.ConversationID)
	c.SendEvent(websocket.OutgoingEvent{
		Event: websocket.EvtConversationLeft,
		Data:  map[string]any{"conversationId": ev.ConversationID},
	})
}

func (rt *Router) handleSend(c *websocket.Client, ev websocket.IncomingEvent) {
	payload := sendMessagePayload{ConversationID: ev.ConversationID, Message: ev.Message}
	if err := rt.validate.Struct(payload); err != nil {
		rt.sendError(c, "invalid send_message payload")
		return
	}

	msgType := ev.MessageType
	if msgType == "" {
		msgType = entity.MessageTypeText
	}

	res, appErr := rt.Dispatcher.SendMessage(c.Context(), c, ev.ConversationID, ev.Message, msgType)
	if appErr != nil {
		rt.sendError(c, appErr.Message)
		return
	}

	// Ack to the sender. A degraded send means bookkeeping failed after the
	// message was persisted and broadcast.
	c.SendEvent(websocket.OutgoingEvent{
		Event: websocket.EvtMessageSent,
		Data: map[string]any{
			"messageId":      res.Message.ID,
			"conversationId": res.Message.ConversationID,
			"degraded":       res.Degraded,
		},
	})
}

func (rt *Router) handleTyping(c *websocket.Client, ev websocket.IncomingEvent, isTyping bool) {
	if ev.ConversationID == 0 {
		rt.sendError(c, "conversationId is required")
		return
	}
	rt.Signaler.Typing(ev.ConversationID, c, isTyping)
}

func (rt *Router) handleStatus(c *websocket.Client, ev websocket.IncomingEvent) {
	payload := statusPayload{Status: ev.Status}
	if err := rt.validate.Struct(payload); err != nil {
		rt.sendError(c, "invalid update_status payload")
		return
	}
	rt.Signaler.UpdateStatus(c, ev.Status)
}

func (rt *Router) sendError(c *websocket.Client, msg string) {
	c.SendEvent(websocket.OutgoingEvent{
		Event: websocket.EvtError,
		Data:  map[string]any{"message": msg},
	})
}
