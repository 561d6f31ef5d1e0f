package domain

import "time"

// Report status values. pending 이후의 전이는 관리자 모더레이션 도구가 수행한다.
const (
	ReportStatusPending     = "pending"
	ReportStatusReviewed    = "reviewed"
	ReportStatusDismissed   = "dismissed"
	ReportStatusActionTaken = "action_taken"
)

// Report represents a user-initiated report on a message or user
type Report struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReporterID     uint64    `gorm:"column:reporter_id;index" json:"reporter_id"`
	ReportedUserID uint64    `gorm:"column:reported_user_id;index" json:"reported_user_id"`
	ConversationID uint64    `gorm:"column:conversation_id;index" json:"conversation_id"`
	MessageID      *uint64   `gorm:"column:message_id" json:"message_id,omitempty"`
	Reason         string    `gorm:"column:reason;type:text" json:"reason"`
	Status         string    `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Report) TableName() string { return "dm_reports" }

// CreateReportRequest represents a report creation request
type CreateReportRequest struct {
	ReportedUserID uint64  `json:"reported_user_id" binding:"required"`
	ConversationID uint64  `json:"conversation_id" binding:"required"`
	MessageID      *uint64 `json:"message_id,omitempty"`
	Reason         string  `json:"reason" binding:"required"`
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID             uint64  `json:"id"`
	ReportedUserID uint64  `json:"reported_user_id"`
	ConversationID uint64  `json:"conversation_id"`
	MessageID      *uint64 `json:"message_id,omitempty"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

// ToResponse converts Report to ReportResponse
func (r *Report) ToResponse() *ReportResponse {
	return &ReportResponse{
		ID:             r.ID,
		ReportedUserID: r.ReportedUserID,
		ConversationID: r.ConversationID,
		MessageID:      r.MessageID,
		Reason:         r.Reason,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}
