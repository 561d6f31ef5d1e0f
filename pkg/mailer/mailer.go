package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers immediate admin alerts for new reports
type Sender interface {
	SendReportAlert(reportID, reporterID, reportedUserID uint64, reason string) error
}

// SMTPConfig SMTP 연결 설정
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminTo  []string
}

type smtpSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a Sender backed by plain SMTP
func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

// SendReportAlert mails the admin recipients about a new report
func (s *smtpSender) SendReportAlert(reportID, reporterID, reportedUserID uint64, reason string) error {
	if len(s.cfg.AdminTo) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[쪽지 신고] #%d 새 신고가 접수되었습니다", reportID)
	body := fmt.Sprintf(
		"신고 ID: %d\r\n신고자: %d\r\n피신고자: %d\r\n사유: %s\r\n",
		reportID, reporterID, reportedUserID, reason,
	)
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(s.cfg.AdminTo, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, s.cfg.AdminTo, []byte(msg))
}
