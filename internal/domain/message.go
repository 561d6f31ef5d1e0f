package domain

import "time"

// MaxContentLength 쪽지 본문 최대 길이 (trim 후 기준)
const MaxContentLength = 2000

// Message represents a direct message inside a conversation.
// Append-only: 수정 불가, 사용자별 소프트 삭제만 가능하다.
type Message struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID  uint64    `gorm:"column:conversation_id;index:idx_dm_messages_conv_created,priority:1" json:"conversation_id"`
	SenderID        uint64    `gorm:"column:sender_id;index" json:"sender_id"`
	Content         string    `gorm:"column:content;type:text" json:"content"`
	ParentMessageID *uint64   `gorm:"column:parent_message_id" json:"parent_message_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime;index:idx_dm_messages_conv_created,priority:2" json:"created_at"`
}

func (Message) TableName() string { return "dm_messages" }

// MessageDeletion marks a message as deleted for one user.
// 논리적으로는 메시지의 deletedBy 집합이며 (message_id, user_id)로 O(1) 조회한다.
type MessageDeletion struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MessageID uint64    `gorm:"column:message_id;uniqueIndex:uq_dm_message_deletion,priority:1" json:"message_id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:uq_dm_message_deletion,priority:2;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MessageDeletion) TableName() string { return "dm_message_deletions" }

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	Content         string  `json:"content" binding:"required"`
	ParentMessageID *uint64 `json:"parent_message_id,omitempty"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID              uint64  `json:"id"`
	ConversationID  uint64  `json:"conversation_id"`
	SenderID        uint64  `json:"sender_id"`
	Content         string  `json:"content"`
	ParentMessageID *uint64 `json:"parent_message_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:              m.ID,
		ConversationID:  m.ConversationID,
		SenderID:        m.SenderID,
		Content:         m.Content,
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}
