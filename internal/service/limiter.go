package service

import (
	"time"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
)

// Window sizes for the two send limiters
const (
	hourlyWindow = time.Hour
	dailyWindow  = 24 * time.Hour
)

// LimiterConfig send limit thresholds
type LimiterConfig struct {
	HourlyPerRecipient int
	DailyGlobal        int
}

// DefaultLimiterConfig returns the default send limits
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		HourlyPerRecipient: 10,
		DailyGlobal:        100,
	}
}

// MessageLimiter enforces the two bucketed sliding-window send limits.
// 버킷 합산 방식이라 정확한 슬라이딩 윈도우 대신 O(버킷 수) 조회로 근사한다.
// Check와 Record 사이는 원자적이지 않다: 같은 발신자의 동시 전송이 한도를
// 약간 넘길 수 있고, 이는 의도된 soft limit이다.
type MessageLimiter struct {
	repo repository.RateLimitRepository
	cfg  LimiterConfig
}

// NewMessageLimiter creates a new MessageLimiter
func NewMessageLimiter(repo repository.RateLimitRepository, cfg LimiterConfig) *MessageLimiter {
	return &MessageLimiter{repo: repo, cfg: cfg}
}

// CheckSend verifies both limits before a message is persisted.
// 한도 초과 시 시간/일 구분이 가능한 에러를 돌려준다.
func (l *MessageLimiter) CheckSend(senderID, recipientID uint64) error {
	ok, err := l.check(senderID, recipientID, domain.LimitTypeHourlyPerRecipient, hourlyWindow, l.cfg.HourlyPerRecipient)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrRateLimitedHourly
	}

	ok, err = l.check(senderID, 0, domain.LimitTypeDailyGlobal, dailyWindow, l.cfg.DailyGlobal)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrRateLimitedDaily
	}
	return nil
}

// RecordSend increments both counters after a successful send
func (l *MessageLimiter) RecordSend(senderID, recipientID uint64) error {
	if err := l.record(senderID, recipientID, domain.LimitTypeHourlyPerRecipient, hourlyWindow); err != nil {
		return err
	}
	return l.record(senderID, 0, domain.LimitTypeDailyGlobal, dailyWindow)
}

// check sums the buckets inside the trailing window against the limit
func (l *MessageLimiter) check(userID, recipientID uint64, limitType string, window time.Duration, limit int) (bool, error) {
	since := time.Now().Add(-window)
	total, err := l.repo.SumSince(userID, recipientID, limitType, since)
	if err != nil {
		return false, err
	}
	return total < int64(limit), nil
}

// record increments the bucket aligned to the window size
func (l *MessageLimiter) record(userID, recipientID uint64, limitType string, window time.Duration) error {
	windowStart := time.Now().UTC().Truncate(window)
	return l.repo.Increment(userID, recipientID, limitType, windowStart)
}
