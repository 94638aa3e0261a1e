package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/argosbackup/argos/internal/config"
)

type EmailNotifier struct {
	cfg      *config.MailConfig
	hostname string
}

func NewEmail(cfg *config.MailConfig, hostname string) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, hostname: hostname}
}

func (e *EmailNotifier) Notify(ctx context.Context, message string) error {
	subject := fmt.Sprintf("backup failure on %s", e.hostname)
	body := Truncate(message)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		e.cfg.Sender, e.cfg.Operator, subject, body)

	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.SMTPHost, e.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, e.cfg.Sender, []string{e.cfg.Operator}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
