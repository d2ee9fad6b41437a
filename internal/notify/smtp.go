package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/octobees/lead-intake/api/internal/config"
)

// SMTPSender delivers mail through an SMTP relay, upgrading with STARTTLS
// before authenticating.
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender returns nil when the relay credentials are incomplete.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPSender{cfg: cfg}
}

// Send dials the relay and delivers msg as multipart/alternative.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	m, err := s.newMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("notify: build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}
	return nil
}

func (s *SMTPSender) newMessage(msg EmailMessage) (*mail.Msg, error) {
	to := msg.To
	if to == "" {
		to = s.cfg.To
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("notify: invalid from address %q: %w", s.cfg.From, err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("notify: invalid to address %q: %w", to, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
