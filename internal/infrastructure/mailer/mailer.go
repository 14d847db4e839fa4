package mailer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"referhub/internal/config"

	"github.com/wneessen/go-mail"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type SMTP struct {
	cfg    config.MailConfig
	logger *log.Logger
}

// New returns an SMTP mailer, or a Noop that only logs when SMTP is not
// configured.
func New(cfg config.MailConfig, logger *log.Logger) Mailer {
	if !cfg.Enabled() {
		if logger != nil {
			logger.Printf("[Mail] SMTP not configured, emails will be logged only")
		}
		return Noop{logger: logger}
	}
	return &SMTP{cfg: cfg, logger: logger}
}

func (s *SMTP) Send(ctx context.Context, m Message) error {
	msg, err := buildMessage(s.cfg.From, m)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	if s.logger != nil {
		s.logger.Printf("[Mail] sent | to=%s subject=%q", m.To, m.Subject)
	}
	return nil
}

func buildMessage(from string, m Message) (*mail.Msg, error) {
	to := strings.TrimSpace(m.To)
	if to == "" {
		return nil, fmt.Errorf("empty recipient")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	return msg, nil
}

type Noop struct {
	logger *log.Logger
}

func (n Noop) Send(_ context.Context, m Message) error {
	if n.logger != nil {
		n.logger.Printf("[Mail] skipped (smtp disabled) | to=%s subject=%q", m.To, m.Subject)
	}
	return nil
}
