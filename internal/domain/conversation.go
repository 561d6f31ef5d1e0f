package domain

import "time"

// Conversation represents the single thread between two users.
// UserAID < UserBID 정규화 불변식: 한 쌍당 대화는 정확히 하나만 존재한다.
// 동시 생성 경합은 (user_a_id, user_b_id) 복합 유니크 인덱스가 막는다.
type Conversation struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserAID        uint64    `gorm:"column:user_a_id;uniqueIndex:uq_dm_conversation_pair,priority:1;index" json:"user_a_id"`
	UserBID        uint64    `gorm:"column:user_b_id;uniqueIndex:uq_dm_conversation_pair,priority:2;index" json:"user_b_id"`
	LastMessageID  *uint64   `gorm:"column:last_message_id" json:"last_message_id,omitempty"`
	LastActivityAt time.Time `gorm:"column:last_activity_at;index" json:"last_activity_at"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Conversation) TableName() string { return "dm_conversations" }

// OtherUserID returns the counterpart of userID in this conversation
func (c *Conversation) OtherUserID(userID uint64) uint64 {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// HasParticipant reports whether userID is one of the two participants
func (c *Conversation) HasParticipant(userID uint64) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// CanonicalPair orders two user IDs into the canonical (smaller, larger) form
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// ConversationDeletion hides a conversation from one participant's inbox
// until new inbound activity arrives.
type ConversationDeletion struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"column:conversation_id;uniqueIndex:uq_dm_conversation_deletion,priority:1" json:"conversation_id"`
	UserID         uint64    `gorm:"column:user_id;uniqueIndex:uq_dm_conversation_deletion,priority:2;index" json:"user_id"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ConversationDeletion) TableName() string { return "dm_conversation_deletions" }

// ReadMarker records how far a participant has read a conversation
type ReadMarker struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"column:conversation_id;uniqueIndex:uq_dm_read_marker,priority:1" json:"conversation_id"`
	UserID         uint64    `gorm:"column:user_id;uniqueIndex:uq_dm_read_marker,priority:2;index" json:"user_id"`
	LastReadAt     time.Time `gorm:"column:last_read_at" json:"last_read_at"`
}

func (ReadMarker) TableName() string { return "dm_read_markers" }

// UpsertConversationRequest represents a conversation create/lookup request
type UpsertConversationRequest struct {
	OtherUserID uint64 `json:"other_user_id" binding:"required"`
}

// ConversationSummary represents a conversation item in API responses
type ConversationSummary struct {
	ID             uint64           `json:"id"`
	OtherUser      *UserSummary     `json:"other_user"`
	LastMessage    *MessageResponse `json:"last_message,omitempty"`
	UnreadCount    int64            `json:"unread_count"`
	LastActivityAt string           `json:"last_activity_at"`
}
