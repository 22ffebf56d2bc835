package conversation_repo

import (
	"context"
	"time"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/entity"
	app_error "github.com/deshmukhatharva11/innovation-hub-sub002/internal/errors"
)

// ConversationRepoContract is the durable side of the messaging core: the
// conversation store owns conversations and the message transcript. The
// dispatcher consumes it through this contract only.
type ConversationRepoContract interface {
	FindConversation(ctx context.Context, id uint) (*entity.Conversation, *app_error.AppError)
	CreateMessage(ctx context.Context, msg *entity.Message) *app_error.AppError
	TouchConversation(ctx context.Context, id uint, preview string, at time.Time) *app_error.AppError
	IncrementUnread(ctx context.Context, id uint, recipient entity.ParticipantSlot) *app_error.AppError
}
