package service

import (
	"testing"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailSender records alert calls instead of talking to SMTP
type fakeMailSender struct {
	reportIDs []uint64
}

func (f *fakeMailSender) SendReportAlert(reportID, reporterID, reportedUserID uint64, reason string) error {
	f.reportIDs = append(f.reportIDs, reportID)
	return nil
}

func newReportEnv(t *testing.T) (*testEnv, *ReportService, *fakeMailSender) {
	t.Helper()
	e := newTestEnv(t)
	mail := &fakeMailSender{}
	svc := NewReportService(repository.NewReportRepository(e.db), e.userRepo, e.notifier, mail)
	return e, svc, mail
}

func TestCreateReport(t *testing.T) {
	e, svc, mail := newReportEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	convID, err := e.convSvc.Upsert(asCaller(userA), userB.ID)
	require.NoError(t, err)
	msg, err := e.msgSvc.Send(asCaller(userB), convID, &domain.SendMessageRequest{Content: "문제의 쪽지"})
	require.NoError(t, err)

	resp, err := svc.Create(asCaller(userA), &domain.CreateReportRequest{
		ReportedUserID: userB.ID,
		ConversationID: convID,
		MessageID:      &msg.ID,
		Reason:         "욕설",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, resp.Status)
	assert.Equal(t, userB.ID, resp.ReportedUserID)
	require.NotNil(t, resp.MessageID)
	assert.Equal(t, msg.ID, *resp.MessageID)

	// 관리자 메일 알림이 나갔는지
	require.Len(t, mail.reportIDs, 1)
	assert.Equal(t, resp.ID, mail.reportIDs[0])
}

func TestCreateReport_Validation(t *testing.T) {
	e, svc, _ := newReportEnv(t)
	userA := e.createUser(t, 1, true)

	// 빈 사유
	_, err := svc.Create(asCaller(userA), &domain.CreateReportRequest{
		ReportedUserID: 2,
		ConversationID: 1,
		Reason:         "   ",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	// 자기 자신 신고
	_, err = svc.Create(asCaller(userA), &domain.CreateReportRequest{
		ReportedUserID: userA.ID,
		ConversationID: 1,
		Reason:         "x",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	// 없는 회원 신고
	_, err = svc.Create(asCaller(userA), &domain.CreateReportRequest{
		ReportedUserID: 999,
		ConversationID: 1,
		Reason:         "x",
	})
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestCreateReport_DuplicatesAllowed(t *testing.T) {
	e, svc, _ := newReportEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	req := &domain.CreateReportRequest{
		ReportedUserID: userB.ID,
		ConversationID: 1,
		Reason:         "반복 신고",
	}
	first, err := svc.Create(asCaller(userA), req)
	require.NoError(t, err)
	second, err := svc.Create(asCaller(userA), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReportEvent_CarriesAllIdentifiers(t *testing.T) {
	report := &domain.Report{ID: 7, ReporterID: 1, ReportedUserID: 2}
	reporter := &domain.CallerContext{ID: 1, Nickname: "회원1"}

	event := newReportEvent(report, reporter)
	assert.Equal(t, domain.NotificationTypeReport, event.Type)
	assert.Equal(t, uint64(7), event.ReportID)
	assert.Equal(t, uint64(1), event.SenderID)
	assert.Equal(t, uint64(2), event.ReportedUserID)
}

func TestGetMyReports(t *testing.T) {
	e, svc, _ := newReportEnv(t)
	userA := e.createUser(t, 1, true)
	userB := e.createUser(t, 2, true)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(asCaller(userA), &domain.CreateReportRequest{
			ReportedUserID: userB.ID,
			ConversationID: 1,
			Reason:         "신고",
		})
		require.NoError(t, err)
	}

	// 페이지는 잘려도 total은 전체 건수
	reports, total, err := svc.GetMyReports(userA.ID, 2)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, int64(3), total)

	// 다른 회원 신고는 안 보인다
	reports, total, err = svc.GetMyReports(userB.ID, 20)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, int64(0), total)

	// limit 범위를 벗어나면 기본값으로 조회
	reports, _, err = svc.GetMyReports(userA.ID, 0)
	require.NoError(t, err)
	assert.Len(t, reports, 3)
}
