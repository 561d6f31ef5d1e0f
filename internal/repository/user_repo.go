package repository

import (
	"errors"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// UserRepository user directory access interface.
// 사용자 테이블의 소유자는 회원 서비스이며 여기서는 조회와 수신함 설정만 다룬다.
type UserRepository interface {
	FindByID(id uint64) (*domain.User, error)
	UpdateInboxEnabled(id uint64, enabled bool) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID returns a user by ID
func (r *userRepository) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInboxEnabled toggles the inbox flag for a user
func (r *userRepository) UpdateInboxEnabled(id uint64, enabled bool) error {
	result := r.db.Model(&domain.User{}).Where("id = ?", id).
		Update("inbox_enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrUserNotFound
	}
	return nil
}
