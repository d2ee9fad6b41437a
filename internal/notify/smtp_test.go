package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/lead-intake/api/internal/config"
)

func relayConfig() config.MailConfig {
	return config.MailConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "mailer@example.com",
		Password: "secret",
		From:     "mailer@example.com",
		To:       "sales@example.com",
	}
}

func TestNewSMTPSenderRequiresCredentials(t *testing.T) {
	cfg := relayConfig()
	cfg.Password = ""
	assert.Nil(t, NewSMTPSender(cfg))
	assert.NotNil(t, NewSMTPSender(relayConfig()))
}

func TestSMTPSenderRejectsBadAddresses(t *testing.T) {
	cfg := relayConfig()
	cfg.From = "not an address"
	sender := NewSMTPSender(cfg)

	err := sender.Send(context.Background(), EmailMessage{To: "sales@example.com", Subject: "hi", Body: "body"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")

	sender = NewSMTPSender(relayConfig())
	_, err = sender.newMessage(EmailMessage{To: "also not an address", Subject: "hi", Body: "body"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid to address")
}

func TestSMTPSenderFallsBackToConfiguredRecipient(t *testing.T) {
	sender := NewSMTPSender(relayConfig())
	m, err := sender.newMessage(EmailMessage{Subject: "hi", Body: "body", HTML: "<p>body</p>"})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSMTPSenderReportsDialFailure(t *testing.T) {
	sender := NewSMTPSender(relayConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := sender.Send(ctx, EmailMessage{Subject: "hi", Body: "body"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send failed")
}
