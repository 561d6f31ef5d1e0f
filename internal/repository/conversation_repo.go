package repository

import (
	"errors"
	"time"

	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository conversation data access interface
type ConversationRepository interface {
	WithTx(tx *gorm.DB) ConversationRepository
	Create(conv *domain.Conversation) error
	FindByID(id uint64) (*domain.Conversation, error)
	FindByPair(userAID, userBID uint64) (*domain.Conversation, error)
	FindVisibleByUser(userID uint64) ([]*domain.Conversation, error)
	UpdateActivity(id uint64, lastMessageID uint64, at time.Time) error

	CreateDeletion(conversationID, userID uint64) error
	RemoveDeletion(conversationID, userID uint64) error
	DeletionExists(conversationID, userID uint64) (bool, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *conversationRepository) WithTx(tx *gorm.DB) ConversationRepository {
	return &conversationRepository{db: tx}
}

// Create inserts a conversation. 정규화된 쌍의 유니크 인덱스 위반은
// 동시 생성 경합이므로 호출자가 재조회로 복구한다.
func (r *conversationRepository) Create(conv *domain.Conversation) error {
	return r.db.Create(conv).Error
}

// FindByID returns a conversation by ID, nil if absent
func (r *conversationRepository) FindByID(id uint64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindByPair looks up the conversation for a canonical pair, nil if absent
func (r *conversationRepository) FindByPair(userAID, userBID uint64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", userAID, userBID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindVisibleByUser returns the user's conversations ordered by recent
// activity, excluding ones hidden by a deletion marker.
func (r *conversationRepository) FindVisibleByUser(userID uint64) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	err := r.db.
		Where("(user_a_id = ? OR user_b_id = ?)", userID, userID).
		Where("id NOT IN (?)", r.db.Model(&domain.ConversationDeletion{}).
			Select("conversation_id").Where("user_id = ?", userID)).
		Order("last_activity_at DESC").
		Find(&convs).Error
	return convs, err
}

// UpdateActivity sets the last message pointer and activity time
func (r *conversationRepository) UpdateActivity(id uint64, lastMessageID uint64, at time.Time) error {
	return r.db.Model(&domain.Conversation{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message_id":  lastMessageID,
			"last_activity_at": at,
		}).Error
}

// CreateDeletion hides a conversation for a user. 이미 숨겨져 있으면 no-op.
func (r *conversationRepository) CreateDeletion(conversationID, userID uint64) error {
	exists, err := r.DeletionExists(conversationID, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&domain.ConversationDeletion{
		ConversationID: conversationID,
		UserID:         userID,
	}).Error
}

// RemoveDeletion clears a deletion marker so the conversation reappears
func (r *conversationRepository) RemoveDeletion(conversationID, userID uint64) error {
	return r.db.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Delete(&domain.ConversationDeletion{}).Error
}

// DeletionExists checks if the user has hidden the conversation
func (r *conversationRepository) DeletionExists(conversationID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ConversationDeletion{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}
