package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/damoang/angple-messaging/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// notificationQueueKey 알림 디스패처가 소비하는 Redis 큐
const notificationQueueKey = "dm:notifications"

// truncateUTF8 truncates string to maxLen runes, appending "…" if truncated
func truncateUTF8(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "…"
}

// NotificationService forwards message/report alerts to the external
// dispatcher. 알림 실패가 쪽지 전송을 막지 않도록 항상 fail-soft로 동작한다.
type NotificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) *NotificationService {
	return &NotificationService{repo: repo, redisClient: redisClient}
}

// notificationEvent is the payload pushed onto the dispatcher queue
type notificationEvent struct {
	Type           string `json:"type"`
	MemberID       uint64 `json:"member_id"`
	SenderID       uint64 `json:"sender_id"`
	ConversationID uint64 `json:"conversation_id,omitempty"`
	ReportID       uint64 `json:"report_id,omitempty"`
	ReportedUserID uint64 `json:"reported_user_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// newReportEvent builds the dispatcher payload for a report.
// 관리자 도구가 신고자/피신고자/신고를 식별할 수 있어야 한다.
func newReportEvent(report *domain.Report, reporter *domain.CallerContext) notificationEvent {
	return notificationEvent{
		Type:           domain.NotificationTypeReport,
		MemberID:       reporter.ID,
		SenderID:       reporter.ID,
		ReportID:       report.ID,
		ReportedUserID: report.ReportedUserID,
		CreatedAt:      time.Now().Format(time.RFC3339),
	}
}

// NotifyMessage alerts the recipient about a new direct message
func (s *NotificationService) NotifyMessage(recipientID uint64, sender *domain.CallerContext, conversationID uint64, content string) {
	n := &domain.Notification{
		MemberID:   recipientID,
		Type:       domain.NotificationTypeMessage,
		Title:      "새 쪽지가 도착했습니다",
		Content:    truncateUTF8(content, 50),
		URL:        "/messages",
		SenderID:   sender.ID,
		SenderName: sender.Nickname,
	}
	if err := s.repo.Create(n); err != nil {
		logger.GetLogger().Warn().Err(err).
			Uint64("recipient_id", recipientID).
			Msg("failed to store message notification")
		return
	}
	s.enqueue(notificationEvent{
		Type:           domain.NotificationTypeMessage,
		MemberID:       recipientID,
		SenderID:       sender.ID,
		ConversationID: conversationID,
		CreatedAt:      time.Now().Format(time.RFC3339),
	})
}

// NotifyReport acknowledges report intake to the reporter. 관리자에게는
// 별도의 메일 경보가 나간다. 신고당한 회원에게는 아무것도 알리지 않는다.
func (s *NotificationService) NotifyReport(report *domain.Report, reporter *domain.CallerContext) {
	n := &domain.Notification{
		MemberID:   reporter.ID,
		Type:       domain.NotificationTypeReport,
		Title:      "신고가 접수되었습니다",
		Content:    truncateUTF8(report.Reason, 50),
		URL:        "/messages/reports",
		SenderID:   reporter.ID,
		SenderName: reporter.Nickname,
	}
	if err := s.repo.Create(n); err != nil {
		logger.GetLogger().Warn().Err(err).
			Uint64("report_id", report.ID).
			Msg("failed to store report notification")
		return
	}
	s.enqueue(newReportEvent(report, reporter))
}

// enqueue pushes the event onto the dispatcher queue. Redis 미연결 시 skip.
func (s *NotificationService) enqueue(event notificationEvent) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to enqueue notification event")
	}
}
