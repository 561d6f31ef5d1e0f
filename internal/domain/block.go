package domain

import "time"

// Block represents a directional block record.
// A가 B를 차단하면 B→A 쪽지만 막힌다. A→B는 별도 차단이 없는 한 허용.
type Block struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BlockerID uint64    `gorm:"column:blocker_id;uniqueIndex:uq_dm_block_pair,priority:1;index" json:"blocker_id"`
	BlockedID uint64    `gorm:"column:blocked_id;uniqueIndex:uq_dm_block_pair,priority:2;index" json:"blocked_id"`
	Reason    *string   `gorm:"column:reason;type:varchar(255)" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Block) TableName() string { return "dm_blocks" }

// BlockRequest represents a block creation request
type BlockRequest struct {
	UserID uint64  `json:"user_id" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

// BlockResponse represents a block item in API responses
type BlockResponse struct {
	BlockID   uint64 `json:"block_id"`
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	BlockedAt string `json:"blocked_at"`
}
