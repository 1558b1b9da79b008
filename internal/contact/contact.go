// AngelaMos | 2026
// contact.go

package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/courtkings/api/internal/config"
)

type Message struct {
	Name    string `json:"name" validate:"required,min=1,max=128"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=256"`
	Body    string `json:"body" validate:"required,min=1,max=4096"`
}

// Service delivers contact-form messages to the site operator. Without
// SMTP configuration it degrades to logging, which keeps local
// development working without a mail server.
type Service struct {
	cfg config.ContactConfig
}

func NewService(cfg config.ContactConfig) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) Send(ctx context.Context, msg *Message) error {
	if s.cfg.SMTPHost == "" || s.cfg.Recipient == "" {
		slog.Info("contact message received",
			"name", msg.Name,
			"email", msg.Email,
			"subject", msg.Subject,
		)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.SMTPUser)
	fmt.Fprintf(&b, "To: %s\r\n", s.cfg.Recipient)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: [contact] %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "From: %s <%s>\r\n\r\n", msg.Name, msg.Email)
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	err := smtp.SendMail(
		addr,
		auth,
		s.cfg.SMTPUser,
		[]string{s.cfg.Recipient},
		[]byte(b.String()),
	)
	if err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}

	return nil
}

// sanitizeHeader strips CRLF so user input cannot inject mail headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
