package repository

import (
	"errors"
	"time"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface
type MessageRepository interface {
	WithTx(tx *gorm.DB) MessageRepository
	Create(msg *domain.Message) error
	FindByID(id uint64) (*domain.Message, error)
	FindRecentByConversation(conversationID, viewerID uint64, limit int) ([]*domain.Message, error)
	CountUnread(conversationID, viewerID uint64, after time.Time) (int64, error)

	CreateDeletion(messageID, userID uint64) error
	DeletionExists(messageID, userID uint64) (bool, error)
	SoftDeleteConversationForUser(conversationID, userID uint64) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *messageRepository) WithTx(tx *gorm.DB) MessageRepository {
	return &messageRepository{db: tx}
}

func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) FindByID(id uint64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindRecentByConversation returns the most recent messages in chronological
// order, excluding ones the viewer has soft-deleted.
func (r *messageRepository) FindRecentByConversation(conversationID, viewerID uint64, limit int) ([]*domain.Message, error) {
	var messages []*domain.Message
	// 최신 limit개를 역순으로 가져온 뒤 뒤집어서 시간순으로 돌려준다
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Where("id NOT IN (?)", r.db.Model(&domain.MessageDeletion{}).
			Select("message_id").Where("user_id = ?", viewerID)).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CountUnread counts messages newer than the read marker, sent by the other
// participant and not soft-deleted by the viewer.
func (r *messageRepository) CountUnread(conversationID, viewerID uint64, after time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND created_at > ?", conversationID, viewerID, after).
		Where("id NOT IN (?)", r.db.Model(&domain.MessageDeletion{}).
			Select("message_id").Where("user_id = ?", viewerID)).
		Count(&count).Error
	return count, err
}

// CreateDeletion adds the user to the message's deleted set. 중복 호출은 no-op.
func (r *messageRepository) CreateDeletion(messageID, userID uint64) error {
	exists, err := r.DeletionExists(messageID, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&domain.MessageDeletion{
		MessageID: messageID,
		UserID:    userID,
	}).Error
}

// DeletionExists checks membership in the message's deleted set
func (r *messageRepository) DeletionExists(messageID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.MessageDeletion{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Count(&count).Error
	return count > 0, err
}

// SoftDeleteConversationForUser marks every message of the conversation as
// deleted for the user. 대화방 삭제 시 일괄 적용된다.
func (r *messageRepository) SoftDeleteConversationForUser(conversationID, userID uint64) error {
	var ids []uint64
	err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Where("id NOT IN (?)", r.db.Model(&domain.MessageDeletion{}).
			Select("message_id").Where("user_id = ?", userID)).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	deletions := make([]domain.MessageDeletion, len(ids))
	for i, id := range ids {
		deletions[i] = domain.MessageDeletion{MessageID: id, UserID: userID}
	}
	return r.db.Create(&deletions).Error
}
