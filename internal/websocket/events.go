package websocket

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Inbound event vocabulary (client -> core).
const (
	EvtJoinConversation  = "join_conversation"
	EvtLeaveConversation = "leave_conversation"
	EvtSendMessage       = "send_message"
	EvtTypingStart       = "typing_start"
	EvtTypingStop        = "typing_stop"
	EvtUpdateStatus      = "update_status"
)

// Outbound event vocabulary (core -> client).
const (
	EvtNewMessage          = "new_message"
	EvtConversationUpdated = "conversation_updated"
	EvtConversationJoined  = "conversation_joined"
	EvtConversationLeft    = "conversation_left"
	EvtMessageSent         = "message_sent"
	EvtUserTyping          = "user_typing"
	EvtUserStatusUpdate    = "user_status_update"
	EvtUserOffline         = "user_offline"
	EvtError               = "error"
)

type IncomingEvent struct {
	Type           string `json:"type" validate:"required"`
	ConversationID uint   `json:"conversationId,omitempty"`
	Message        string `json:"message,omitempty"`
	MessageType    string `json:"messageType,omitempty"`
	Status         string `json:"status,omitempty"`
}

type OutgoingEvent struct {
	Event     string `json:"event"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (e OutgoingEvent) encode() ([]byte, error) {
	return json.Marshal(e)
}

// Room naming scheme. Rooms are ephemeral broadcast groups, never the source
// of truth for conversation participation.

func ConversationRoom(conversationID uint) string {
	return fmt.Sprintf("conversation_%d", conversationID)
}

func UserRoom(userID string) string {
	return "user_" + userID
}

func RoleRoom(role string) string {
	return "role_" + role
}
