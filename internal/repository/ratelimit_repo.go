package repository

import (
	"time"

	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateLimitRepository windowed send-counter data access interface
type RateLimitRepository interface {
	SumSince(userID, recipientID uint64, limitType string, since time.Time) (int64, error)
	Increment(userID, recipientID uint64, limitType string, windowStart time.Time) error
}

type rateLimitRepository struct {
	db *gorm.DB
}

// NewRateLimitRepository creates a new RateLimitRepository
func NewRateLimitRepository(db *gorm.DB) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

// SumSince totals the counters of buckets starting at or after `since`.
// 범위 밖의 버킷은 그냥 제외되므로 별도 만료 작업이 필요 없다.
func (r *rateLimitRepository) SumSince(userID, recipientID uint64, limitType string, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&domain.RateLimitCounter{}).
		Where("user_id = ? AND recipient_id = ? AND limit_type = ? AND window_start >= ?",
			userID, recipientID, limitType, since).
		Select("COALESCE(SUM(message_count), 0)").
		Scan(&total).Error
	return total, err
}

// Increment bumps the current bucket's counter, creating it on first use
func (r *rateLimitRepository) Increment(userID, recipientID uint64, limitType string, windowStart time.Time) error {
	counter := &domain.RateLimitCounter{
		UserID:       userID,
		RecipientID:  recipientID,
		LimitType:    limitType,
		WindowStart:  windowStart,
		MessageCount: 1,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "recipient_id"},
			{Name: "limit_type"}, {Name: "window_start"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"message_count": gorm.Expr("message_count + 1"),
		}),
	}).Create(counter).Error
}
