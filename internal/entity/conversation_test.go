package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSlot(t *testing.T) {
	assert.Equal(t, SlotStudent, ResolveSlot("student"))
	assert.Equal(t, SlotMentor, ResolveSlot("mentor"))
	assert.Equal(t, SlotMentor, ResolveSlot("coordinator"))
	assert.Equal(t, SlotMentor, ResolveSlot("admin"))
	assert.Equal(t, SlotNone, ResolveSlot("visitor"))
	assert.Equal(t, SlotNone, ResolveSlot(""))
}

func TestSlotDisplayRole(t *testing.T) {
	assert.Equal(t, "student", SlotStudent.DisplayRole())
	assert.Equal(t, "mentor", SlotMentor.DisplayRole())
	assert.Equal(t, "", SlotNone.DisplayRole())
}

func TestSlotOther(t *testing.T) {
	assert.Equal(t, SlotMentor, SlotStudent.Other())
	assert.Equal(t, SlotStudent, SlotMentor.Other())
	assert.Equal(t, SlotNone, SlotNone.Other())
}

func TestParticipantFor(t *testing.T) {
	conv := &Conversation{StudentID: "u1", MentorID: "u2"}

	assert.Equal(t, "u1", conv.ParticipantFor(SlotStudent))
	assert.Equal(t, "u2", conv.ParticipantFor(SlotMentor))
	assert.Equal(t, "", conv.ParticipantFor(SlotNone))
}
