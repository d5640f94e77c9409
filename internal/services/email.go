package services

import (
	"fmt"
	"net/smtp"

	"github.com/rafiul/lifesure-api/internal/config"
	"github.com/rafiul/lifesure-api/internal/models"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *EmailService) SendApplicationStatus(to, applicantName, policyTitle, status string, rejectionFeedback *string) error {
	subject := fmt.Sprintf("Your application for %s has been %s", policyTitle, status)

	feedback := ""
	if status == models.StatusRejected && rejectionFeedback != nil {
		feedback = fmt.Sprintf("<p>Feedback: %s</p>", *rejectionFeedback)
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Application Update</h2>
			<p>Hi %s,</p>
			<p>Your application for <strong>%s</strong> is now <strong>%s</strong>.</p>
			%s
		</body>
		</html>
	`, applicantName, policyTitle, status, feedback)

	return s.Send(to, subject, body)
}
