package repository

import (
	"errors"
	"time"

	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadMarkerRepository read marker data access interface
type ReadMarkerRepository interface {
	Upsert(conversationID, userID uint64, readAt time.Time) error
	Find(conversationID, userID uint64) (*domain.ReadMarker, error)
}

type readMarkerRepository struct {
	db *gorm.DB
}

// NewReadMarkerRepository creates a new ReadMarkerRepository
func NewReadMarkerRepository(db *gorm.DB) ReadMarkerRepository {
	return &readMarkerRepository{db: db}
}

// Upsert sets the user's last-read time for a conversation
func (r *readMarkerRepository) Upsert(conversationID, userID uint64, readAt time.Time) error {
	marker := &domain.ReadMarker{
		ConversationID: conversationID,
		UserID:         userID,
		LastReadAt:     readAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(marker).Error
}

// Find returns the user's read marker, nil if none exists yet
func (r *readMarkerRepository) Find(conversationID, userID uint64) (*domain.ReadMarker, error) {
	var marker domain.ReadMarker
	err := r.db.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &marker, nil
}
