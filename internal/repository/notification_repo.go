package repository

import (
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository notification data access interface.
// 조회와 읽음 처리는 알림 디스패처 쪽 서비스의 몫이라 여기서는 적재만 한다.
type NotificationRepository interface {
	Create(n *domain.Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *domain.Notification) error {
	return r.db.Create(n).Error
}
