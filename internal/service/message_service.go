package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/damoang/angple-messaging/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	messagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dm_messages_sent_total",
		Help: "Total number of direct messages sent",
	})
	messagesRateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dm_messages_rate_limited_total",
		Help: "Total number of sends rejected by a rate limit",
	}, []string{"scope"})
)

// MessageService business logic for direct messages
type MessageService interface {
	Send(caller *domain.CallerContext, conversationID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	Delete(callerID, messageID uint64) error
	List(callerID, conversationID uint64, limit int) ([]*domain.MessageResponse, error)
}

type messageService struct {
	db          *gorm.DB
	msgRepo     repository.MessageRepository
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
	blockRepo   repository.BlockRepository
	limiter     *MessageLimiter
	notifier    *NotificationService
	redisClient *redis.Client
}

// NewMessageService creates a new MessageService
func NewMessageService(
	db *gorm.DB,
	msgRepo repository.MessageRepository,
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	blockRepo repository.BlockRepository,
	limiter *MessageLimiter,
	notifier *NotificationService,
	redisClient *redis.Client,
) MessageService {
	return &messageService{
		db:          db,
		msgRepo:     msgRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
		blockRepo:   blockRepo,
		limiter:     limiter,
		notifier:    notifier,
		redisClient: redisClient,
	}
}

// Send validates and appends a message, updates conversation activity,
// un-hides the conversation for the recipient and queues the alert.
// 메시지 저장과 부수 효과는 한 트랜잭션, 카운터 기록과 알림은 저장 성공 후.
func (s *messageService) Send(caller *domain.CallerContext, conversationID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: 쪽지 내용을 입력해주세요", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return nil, fmt.Errorf("%w: 쪽지는 %d자를 넘을 수 없습니다", common.ErrInvalidInput, domain.MaxContentLength)
	}

	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, common.ErrConversationNotFound
	}
	if !conv.HasParticipant(caller.ID) {
		return nil, common.ErrUnauthorized
	}

	recipientID := conv.OtherUserID(caller.ID)
	recipient, err := s.userRepo.FindByID(recipientID)
	if err != nil {
		return nil, err
	}
	if !recipient.InboxEnabled {
		return nil, common.ErrInboxDisabled
	}

	// 수신자가 발신자를 차단한 경우 (단방향)
	blocked, err := s.blockRepo.Exists(recipientID, caller.ID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, common.ErrBlocked
	}

	if req.ParentMessageID != nil {
		parent, err := s.msgRepo.FindByID(*req.ParentMessageID)
		if err != nil {
			return nil, fmt.Errorf("%w: 답장 대상 쪽지가 없습니다", common.ErrInvalidInput)
		}
		if parent.ConversationID != conversationID {
			return nil, fmt.Errorf("%w: 답장 대상이 다른 대화의 쪽지입니다", common.ErrInvalidInput)
		}
	}

	if err := s.limiter.CheckSend(caller.ID, recipientID); err != nil {
		switch err {
		case common.ErrRateLimitedHourly:
			messagesRateLimitedTotal.WithLabelValues("hourly").Inc()
		case common.ErrRateLimitedDaily:
			messagesRateLimitedTotal.WithLabelValues("daily").Inc()
		}
		return nil, err
	}

	msg := &domain.Message{
		ConversationID:  conversationID,
		SenderID:        caller.ID,
		Content:         content,
		ParentMessageID: req.ParentMessageID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.msgRepo.WithTx(tx).Create(msg); err != nil {
			return err
		}
		if err := s.convRepo.WithTx(tx).UpdateActivity(conversationID, msg.ID, msg.CreatedAt); err != nil {
			return err
		}
		// 수신자가 숨긴 대화라면 다시 보이게 한다
		return s.convRepo.WithTx(tx).RemoveDeletion(conversationID, recipientID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.limiter.RecordSend(caller.ID, recipientID); err != nil {
		logger.GetLogger().Warn().Err(err).
			Uint64("sender_id", caller.ID).
			Msg("failed to record rate limit counters")
	}
	s.invalidateUnreadCache(recipientID)
	s.notifier.NotifyMessage(recipientID, caller, conversationID, content)
	messagesSentTotal.Inc()

	return msg.ToResponse(), nil
}

// Delete soft-deletes a message for its sender. 반복 호출은 no-op.
func (s *messageService) Delete(callerID, messageID uint64) error {
	msg, err := s.msgRepo.FindByID(messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != callerID {
		return common.ErrUnauthorized
	}
	return s.msgRepo.CreateDeletion(messageID, callerID)
}

// List returns up to limit recent messages in chronological order.
// 참가자가 아니면 대화 존재를 노출하지 않도록 빈 목록을 돌려준다.
func (s *messageService) List(callerID, conversationID uint64, limit int) ([]*domain.MessageResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 50
	}

	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || !conv.HasParticipant(callerID) {
		return []*domain.MessageResponse{}, nil
	}

	messages, err := s.msgRepo.FindRecentByConversation(conversationID, callerID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// invalidateUnreadCache drops the recipient's cached unread flag
func (s *messageService) invalidateUnreadCache(userID uint64) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.redisClient.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to invalidate unread cache")
	}
}
