package domain

import "time"

// User represents a member of the user directory.
// 쪽지 서비스는 사용자 테이블의 소유자가 아니며 조회/수신함 설정만 다룬다.
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Nickname     string    `gorm:"column:nickname;type:varchar(100)" json:"nickname"`
	Level        uint8     `gorm:"column:level;default:1" json:"level"`
	Status       string    `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	InboxEnabled bool      `gorm:"column:inbox_enabled;default:true" json:"inbox_enabled"`
	AvatarURL    *string   `gorm:"column:avatar_url;type:varchar(500)" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "v2_users" }

// CallerContext carries the resolved identity of the requesting user.
// 요청마다 디렉터리를 다시 조회하지 않도록 핸들러에서 한 번 해석해 전달한다.
type CallerContext struct {
	ID           uint64
	Nickname     string
	InboxEnabled bool
}

// UserSummary represents the counterpart user in conversation responses
type UserSummary struct {
	ID        uint64  `json:"id"`
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ToSummary converts User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}
