package conversation_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/entity"
	app_error "github.com/deshmukhatharva11/innovation-hub-sub002/internal/errors"
)

type ConversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepoContract {
	return &ConversationRepo{DB: db}
}

func (r *ConversationRepo) FindConversation(ctx context.Context, id uint) (*entity.Conversation, *app_error.AppError) {
	var conv entity.Conversation
	if err := r.DB.WithContext(ctx).First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("conversation not found")
		}
		log.Error().Err(err).Uint("conversationID", id).Msg("failed to fetch conversation")
		return nil, app_error.StorageFailure("failed to fetch conversation")
	}
	return &conv, nil
}

func (r *ConversationRepo) CreateMessage(ctx context.Context, msg *entity.Message) *app_error.AppError {
	if msg.Type == "" {
		msg.Type = entity.MessageTypeText
	}
	if err := r.DB.WithContext(ctx).Create(msg).Error; err != nil {
		log.Error().Err(err).Uint("conversationID", msg.ConversationID).Msg("failed to create message")
		return app_error.StorageFailure(fmt.Sprintf("failed to create message: %v", err))
	}
	return nil
}

func (r *ConversationRepo) TouchConversation(ctx context.Context, id uint, preview string, at time.Time) *app_error.AppError {
	err := r.DB.WithContext(ctx).Model(&entity.Conversation{}).Where("id = ?", id).Updates(map[string]any{
		"last_message":    preview,
		"last_message_at": at,
	}).Error
	if err != nil {
		return app_error.StorageFailure("failed to update last message metadata")
	}
	return nil
}

// IncrementUnread bumps the recipient slot's counter with a SQL-level atomic
// add. Two participants sending at the same time must never lose an update.
func (r *ConversationRepo) IncrementUnread(ctx context.Context, id uint, recipient entity.ParticipantSlot) *app_error.AppError {
	var column string
	switch recipient {
	case entity.SlotStudent:
		column = "student_unread"
	case entity.SlotMentor:
		column = "mentor_unread"
	default:
		return app_error.StorageFailure("unknown recipient slot")
	}

	err := r.DB.WithContext(ctx).Model(&entity.Conversation{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	if err != nil {
		return app_error.StorageFailure("failed to increment unread counter")
	}
	return nil
}
