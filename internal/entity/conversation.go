package entity

import (
	"time"
)

const (
	ConversationActive   = "active"
	ConversationClosed   = "closed"
	ConversationArchived = "archived"
)

// Conversation is a two-participant mentorship thread. StudentID and MentorID
// are the two fixed participant slots; the unread counters are independent,
// one per slot.
type Conversation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	StudentID     string     `gorm:"not null;index" json:"student_id"`
	MentorID      string     `gorm:"not null;index" json:"mentor_id"`
	IdeaID        *uint      `json:"idea_id,omitempty"`
	Status        string     `gorm:"not null;default:active" json:"status"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	StudentUnread int64      `gorm:"not null;default:0" json:"student_unread"`
	MentorUnread  int64      `gorm:"not null;default:0" json:"mentor_unread"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ParticipantSlot is the closed set of roles a sender can occupy inside a
// conversation, resolved once from the account role. A coordinator or admin
// acting as the mentor-side participant occupies SlotMentor.
type ParticipantSlot int

const (
	SlotNone ParticipantSlot = iota
	SlotStudent
	SlotMentor
)

func ResolveSlot(accountRole string) ParticipantSlot {
	switch accountRole {
	case "student":
		return SlotStudent
	case "mentor", "coordinator", "admin":
		return SlotMentor
	default:
		return SlotNone
	}
}

// DisplayRole is the denormalized role-at-time-of-send stored on a Message.
func (s ParticipantSlot) DisplayRole() string {
	switch s {
	case SlotStudent:
		return "student"
	case SlotMentor:
		return "mentor"
	default:
		return ""
	}
}

func (s ParticipantSlot) Other() ParticipantSlot {
	switch s {
	case SlotStudent:
		return SlotMentor
	case SlotMentor:
		return SlotStudent
	default:
		return SlotNone
	}
}

// ParticipantFor returns the identity registered in the given slot.
func (c *Conversation) ParticipantFor(s ParticipantSlot) string {
	switch s {
	case SlotStudent:
		return c.StudentID
	case SlotMentor:
		return c.MentorID
	default:
		return ""
	}
}
