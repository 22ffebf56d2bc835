package entity

import (
	"time"
)

const MessageTypeText = "text"

// Message rows are immutable once persisted; IsRead is the only field mutated
// later, and not by the messaging core. SenderRole is the role-at-time-of-send
// and is never re-derived from the account role.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       string    `gorm:"not null" json:"sender_id"`
	SenderRole     string    `gorm:"not null" json:"sender_role"`
	Body           string    `gorm:"not null" json:"message"`
	Type           string    `gorm:"not null;default:text" json:"message_type"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
