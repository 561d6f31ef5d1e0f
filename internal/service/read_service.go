package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/damoang/angple-messaging/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// unreadCacheTTL 읽지 않음 플래그 캐시 유지 시간
const unreadCacheTTL = time.Minute

func unreadCacheKey(userID uint64) string {
	return fmt.Sprintf("dm:unread:%d", userID)
}

// ReadService business logic for read markers and unread derivation
type ReadService interface {
	MarkRead(callerID, conversationID uint64) error
	MarkAllRead(callerID uint64) error
	UnreadCount(callerID, conversationID uint64) (int64, error)
	HasUnread(callerID uint64) (bool, error)
}

type readService struct {
	convRepo    repository.ConversationRepository
	msgRepo     repository.MessageRepository
	readRepo    repository.ReadMarkerRepository
	redisClient *redis.Client
}

// NewReadService creates a new ReadService
func NewReadService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	readRepo repository.ReadMarkerRepository,
	redisClient *redis.Client,
) ReadService {
	return &readService{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		readRepo:    readRepo,
		redisClient: redisClient,
	}
}

// MarkRead upserts the caller's read marker for a conversation.
// 세션 하이드레이션 전 UI 호출을 견디도록 미인증(callerID 0)은 조용히 무시한다.
func (s *readService) MarkRead(callerID, conversationID uint64) error {
	if callerID == 0 {
		return nil
	}
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return common.ErrConversationNotFound
	}
	if !conv.HasParticipant(callerID) {
		return common.ErrUnauthorized
	}
	if err := s.readRepo.Upsert(conversationID, callerID, time.Now()); err != nil {
		return err
	}
	s.invalidateCache(callerID)
	return nil
}

// MarkAllRead applies MarkRead to every visible conversation of the caller
func (s *readService) MarkAllRead(callerID uint64) error {
	if callerID == 0 {
		return nil
	}
	convs, err := s.convRepo.FindVisibleByUser(callerID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, conv := range convs {
		if err := s.readRepo.Upsert(conv.ID, callerID, now); err != nil {
			return err
		}
	}
	s.invalidateCache(callerID)
	return nil
}

// UnreadCount counts messages newer than the caller's read marker, sent by
// the other participant and not soft-deleted by the caller.
func (s *readService) UnreadCount(callerID, conversationID uint64) (int64, error) {
	lastRead := time.Time{}
	marker, err := s.readRepo.Find(conversationID, callerID)
	if err != nil {
		return 0, err
	}
	if marker != nil {
		lastRead = marker.LastReadAt
	}
	return s.msgRepo.CountUnread(conversationID, callerID, lastRead)
}

// HasUnread reports whether any visible conversation has unread messages.
// 첫 번째 발견에서 바로 중단하고, 결과를 짧게 캐시한다.
func (s *readService) HasUnread(callerID uint64) (bool, error) {
	if callerID == 0 {
		return false, nil
	}

	if cached, ok := s.cachedUnread(callerID); ok {
		return cached, nil
	}

	convs, err := s.convRepo.FindVisibleByUser(callerID)
	if err != nil {
		return false, err
	}
	hasUnread := false
	for _, conv := range convs {
		count, err := s.UnreadCount(callerID, conv.ID)
		if err != nil {
			return false, err
		}
		if count > 0 {
			hasUnread = true
			break
		}
	}
	s.cacheUnread(callerID, hasUnread)
	return hasUnread, nil
}

func (s *readService) cachedUnread(userID uint64) (bool, bool) {
	if s.redisClient == nil {
		return false, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	val, err := s.redisClient.Get(ctx, unreadCacheKey(userID)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (s *readService) cacheUnread(userID uint64, hasUnread bool) {
	if s.redisClient == nil {
		return
	}
	val := "0"
	if hasUnread {
		val = "1"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.redisClient.Set(ctx, unreadCacheKey(userID), val, unreadCacheTTL).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to cache unread flag")
	}
}

func (s *readService) invalidateCache(userID uint64) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.redisClient.Del(ctx, unreadCacheKey(userID)).Err()
}
