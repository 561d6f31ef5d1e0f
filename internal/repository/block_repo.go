package repository

import (
	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// BlockRepository block data access interface
type BlockRepository interface {
	Create(blockerID, blockedID uint64, reason *string) (*domain.Block, error)
	Delete(blockerID, blockedID uint64) error
	Exists(blockerID, blockedID uint64) (bool, error)
	FindByBlocker(blockerID uint64) ([]*domain.Block, error)
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new BlockRepository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Create adds a block
func (r *blockRepository) Create(blockerID, blockedID uint64, reason *string) (*domain.Block, error) {
	block := &domain.Block{
		BlockerID: blockerID,
		BlockedID: blockedID,
		Reason:    reason,
	}
	if err := r.db.Create(block).Error; err != nil {
		return nil, err
	}
	return block, nil
}

// Delete removes a block
func (r *blockRepository) Delete(blockerID, blockedID uint64) error {
	result := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&domain.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotBlocked
	}
	return nil
}

// Exists checks if a block exists
func (r *blockRepository) Exists(blockerID, blockedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// FindByBlocker returns all blocks created by a user
func (r *blockRepository) FindByBlocker(blockerID uint64) ([]*domain.Block, error) {
	var blocks []*domain.Block
	err := r.db.Where("blocker_id = ?", blockerID).Order("id DESC").Find(&blocks).Error
	return blocks, err
}
