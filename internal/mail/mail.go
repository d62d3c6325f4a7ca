// Package mail sends invoice emails over SMTP. The core talks to the Sender
// interface so the TUI can be tested without a relay.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	gomail "github.com/wneessen/go-mail"
)

// Message is one outbound invoice email.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig carries relay settings; see the config package for sourcing.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if msg.AttachmentPath != "" {
		ct, err := attachmentContentType(msg.AttachmentPath)
		if err != nil {
			return err
		}
		m.AttachFile(msg.AttachmentPath,
			gomail.WithFileName(filepath.Base(msg.AttachmentPath)),
			gomail.WithFileContentType(ct))
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// attachmentContentType sniffs the generated document: the pandoc path yields
// a real PDF, the fallback path a Markdown copy with a .pdf name.
func attachmentContentType(path string) (gomail.ContentType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return gomail.ContentType("application/pdf"), nil
	}
	return gomail.TypeTextPlain, nil
}
