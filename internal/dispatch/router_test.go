package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/entity"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
)

func newRouterFixture(t *testing.T) (*Router, *fixture) {
	t.Helper()
	f := newFixture(t)
	rt := NewRouter(f.dispatcher, NewSignaler(f.hub), f.hub)
	return rt, f
}

func TestRouter_MalformedEvent(t *testing.T) {
	rt, f := newRouterFixture(t)

	rt.Route(f.student, []byte("{not json"))

	ev := recvEvent(t, f.student)
	assert.Equal(t, websocket.EvtError, ev.Event)
	assertNoEvent(t, f.mentor)
}

func TestRouter_UnknownEventType(t *testing.T) {
	rt, f := newRouterFixture(t)

	rt.Route(f.student, []byte(`{"type":"self_destruct"}`))

	ev := recvEvent(t, f.student)
	assert.Equal(t, websocket.EvtError, ev.Event)
}

func TestRouter_JoinAndLeaveConversation(t *testing.T) {
	rt, f := newRouterFixture(t)

	newcomer := websocket.NewClient("u1", "student", nil)
	f.hub.Attach(newcomer)

	rt.Route(newcomer, []byte(`{"type":"join_conversation","conversationId":7}`))
	ev := recvEvent(t, newcomer)
	assert.Equal(t, websocket.EvtConversationJoined, ev.Event)
	assert.True(t, f.hub.Rooms().Contains(newcomer, websocket.ConversationRoom(7)))

	rt.Route(newcomer, []byte(`{"type":"leave_conversation","conversationId":7}`))
	ev = recvEvent(t, newcomer)
	assert.Equal(t, websocket.EvtConversationLeft, ev.Event)
	assert.False(t, f.hub.Rooms().Contains(newcomer, websocket.ConversationRoom(7)))
}

func TestRouter_SendMessageFlow(t *testing.T) {
	rt, f := newRouterFixture(t)

	rt.Route(f.student, []byte(`{"type":"send_message","conversationId":7,"message":"hello"}`))

	// sender: new_message broadcast, conversation_updated broadcast, then ack
	ev := recvEvent(t, f.student)
	assert.Equal(t, websocket.EvtNewMessage, ev.Event)
	ev = recvEvent(t, f.student)
	assert.Equal(t, websocket.EvtConversationUpdated, ev.Event)
	ev = recvEvent(t, f.student)
	require.Equal(t, websocket.EvtMessageSent, ev.Event)

	data, ok := ev.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["degraded"])

	assert.Equal(t, 1, f.store.messageCount())
	assert.Equal(t, 1, f.store.increments[entity.SlotMentor])
}

func TestRouter_SendMessageValidation(t *testing.T) {
	rt, f := newRouterFixture(t)

	rt.Route(f.student, []byte(`{"type":"send_message","conversationId":7}`))

	ev := recvEvent(t, f.student)
	assert.Equal(t, websocket.EvtError, ev.Event)
	assert.Equal(t, 0, f.store.messageCount(), "empty body never reaches the store")
}

func TestRouter_ForbiddenSendReportsToSenderOnly(t *testing.T) {
	rt, f := newRouterFixture(t)

	intruder := websocket.NewClient("u3", "mentor", nil)
	f.hub.Attach(intruder)
	rt.Route(intruder, []byte(`{"type":"send_message","conversationId":7,"message":"hi"}`))

	ev := recvEvent(t, intruder)
	assert.Equal(t, websocket.EvtError, ev.Event)
	assertNoEvent(t, f.student)
	assertNoEvent(t, f.mentor)
}

func TestRouter_TypingExcludesSender(t *testing.T) {
	rt, f := newRouterFixture(t)

	rt.Route(f.student, []byte(`{"type":"typing_start","conversationId":7}`))

	ev := recvEvent(t, f.mentor)
	require.Equal(t, websocket.EvtUserTyping, ev.Event)
	data, ok := ev.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, true, data["isTyping"])

	assertNoEvent(t, f.student)

	rt.Route(f.student, []byte(`{"type":"typing_stop","conversationId":7}`))
	ev = recvEvent(t, f.mentor)
	data = ev.Data.(map[string]any)
	assert.Equal(t, false, data["isTyping"])

	assert.Equal(t, 0, f.store.messageCount(), "typing signals are never persisted")
}

func TestRouter_StatusUpdateIsGlobal(t *testing.T) {
	rt, f := newRouterFixture(t)

	// not in any conversation room with the sender
	bystander := websocket.NewClient("u9", "mentor", nil)
	f.hub.Attach(bystander)

	rt.Route(f.student, []byte(`{"type":"update_status","status":"away"}`))

	ev := recvEvent(t, bystander)
	require.Equal(t, websocket.EvtUserStatusUpdate, ev.Event)
	data := ev.Data.(map[string]any)
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, "away", data["status"])
}
