package service

import (
	"fmt"
	"strings"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/damoang/angple-messaging/pkg/logger"
	"github.com/damoang/angple-messaging/pkg/mailer"
)

// ReportService handles report intake.
// pending 이후의 상태 전이는 관리자 모더레이션 도구의 몫이다.
type ReportService struct {
	repo     repository.ReportRepository
	userRepo repository.UserRepository
	notifier *NotificationService
	mailer   mailer.Sender
}

// NewReportService creates a new ReportService
func NewReportService(
	repo repository.ReportRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
	m mailer.Sender,
) *ReportService {
	return &ReportService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		mailer:   m,
	}
}

// Create files a report and forwards it to the admin channels.
// 같은 신고자의 중복 신고는 의도적으로 허용한다.
func (s *ReportService) Create(caller *domain.CallerContext, req *domain.CreateReportRequest) (*domain.ReportResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: 신고 사유를 입력해주세요", common.ErrInvalidInput)
	}
	if caller.ID == req.ReportedUserID {
		return nil, fmt.Errorf("%w: 자기 자신을 신고할 수 없습니다", common.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(req.ReportedUserID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterID:     caller.ID,
		ReportedUserID: req.ReportedUserID,
		ConversationID: req.ConversationID,
		MessageID:      req.MessageID,
		Reason:         reason,
		Status:         domain.ReportStatusPending,
	}
	if err := s.repo.Create(report); err != nil {
		return nil, err
	}

	s.notifier.NotifyReport(report, caller)
	if s.mailer != nil {
		if err := s.mailer.SendReportAlert(report.ID, caller.ID, req.ReportedUserID, reason); err != nil {
			logger.GetLogger().Warn().Err(err).
				Uint64("report_id", report.ID).
				Msg("failed to send report alert mail")
		}
	}

	return report.ToResponse(), nil
}

// GetMyReports returns the caller's recent reports with the total count
func (s *ReportService) GetMyReports(callerID uint64, limit int) ([]*domain.ReportResponse, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	reports, err := s.repo.FindByReporter(callerID, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByReporter(callerID)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*domain.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = r.ToResponse()
	}
	return responses, total, nil
}
