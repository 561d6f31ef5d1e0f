package migration

import (
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the messaging schema.
// 테이블 없으면 생성, 있으면 skip. 정규화 쌍/삭제 마커/레이트 버킷의
// 유니크 인덱스가 여기서 함께 만들어진다.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Conversation{},
		&domain.ConversationDeletion{},
		&domain.Message{},
		&domain.MessageDeletion{},
		&domain.ReadMarker{},
		&domain.RateLimitCounter{},
		&domain.Block{},
		&domain.Report{},
		&domain.Notification{},
	)
}
