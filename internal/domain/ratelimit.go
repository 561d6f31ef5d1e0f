package domain

import "time"

// Rate limit scope types
const (
	LimitTypeHourlyPerRecipient = "hourly_per_recipient"
	LimitTypeDailyGlobal        = "daily_global"
)

// RateLimitCounter is one time-aligned bucket of a sliding send window.
// 오래된 버킷은 조회 범위에서 제외될 뿐 따로 만료시키지 않는다.
type RateLimitCounter struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"column:user_id;uniqueIndex:uq_dm_rate_bucket,priority:1" json:"user_id"`
	RecipientID  uint64    `gorm:"column:recipient_id;uniqueIndex:uq_dm_rate_bucket,priority:2;default:0" json:"recipient_id"`
	LimitType    string    `gorm:"column:limit_type;type:varchar(30);uniqueIndex:uq_dm_rate_bucket,priority:3" json:"limit_type"`
	WindowStart  time.Time `gorm:"column:window_start;uniqueIndex:uq_dm_rate_bucket,priority:4;index" json:"window_start"`
	MessageCount int       `gorm:"column:message_count;default:0" json:"message_count"`
}

func (RateLimitCounter) TableName() string { return "dm_rate_counters" }
