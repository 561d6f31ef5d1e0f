package service

import (
	"fmt"
	"testing"

	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/migration"
	"github.com/damoang/angple-messaging/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	readRepo repository.ReadMarkerRepository
	rateRepo repository.RateLimitRepository

	limiter  *MessageLimiter
	notifier *NotificationService
	convSvc  ConversationService
	msgSvc   MessageService
	readSvc  ReadService
	blockSvc BlockService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := migration.Run(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	e := &testEnv{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		convRepo: repository.NewConversationRepository(db),
		msgRepo:  repository.NewMessageRepository(db),
		readRepo: repository.NewReadMarkerRepository(db),
		rateRepo: repository.NewRateLimitRepository(db),
	}
	blockRepo := repository.NewBlockRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	e.limiter = NewMessageLimiter(e.rateRepo, DefaultLimiterConfig())
	e.notifier = NewNotificationService(notifRepo, nil)
	e.convSvc = NewConversationService(db, e.convRepo, e.msgRepo, e.userRepo, e.readRepo)
	e.msgSvc = NewMessageService(db, e.msgRepo, e.convRepo, e.userRepo, blockRepo, e.limiter, e.notifier, nil)
	e.readSvc = NewReadService(e.convRepo, e.msgRepo, e.readRepo, nil)
	e.blockSvc = NewBlockService(blockRepo, e.userRepo)
	return e
}

// createUser inserts a directory user for tests
func (e *testEnv) createUser(t *testing.T, id uint64, inboxEnabled bool) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Username:     fmt.Sprintf("user%d", id),
		Nickname:     fmt.Sprintf("회원%d", id),
		InboxEnabled: inboxEnabled,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if !inboxEnabled {
		// default:true 컬럼이라 false는 명시적으로 내려야 한다
		if err := e.db.Model(user).Update("inbox_enabled", false).Error; err != nil {
			t.Fatalf("failed to disable inbox: %v", err)
		}
	}
	return user
}

func asCaller(u *domain.User) *domain.CallerContext {
	return &domain.CallerContext{
		ID:           u.ID,
		Nickname:     u.Nickname,
		InboxEnabled: u.InboxEnabled,
	}
}
