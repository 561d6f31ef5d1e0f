package domain

import "time"

// Notification event types dispatched to recipients
const (
	NotificationTypeMessage = "message"
	NotificationTypeReport  = "report"
)

// Notification represents a queued alert for the notification dispatcher
type Notification struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberID   uint64     `gorm:"column:member_id;index" json:"member_id"`
	Type       string     `gorm:"column:type;type:varchar(20)" json:"type"`
	Title      string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	URL        string     `gorm:"column:url;type:varchar(500)" json:"url"`
	SenderID   uint64     `gorm:"column:sender_id" json:"sender_id"`
	SenderName string     `gorm:"column:sender_name;type:varchar(100)" json:"sender_name"`
	IsRead     bool       `gorm:"column:is_read;default:false;index" json:"is_read"`
	ReadAt     *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "dm_notifications" }
