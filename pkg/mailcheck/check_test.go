package mailcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucos/health-check/pkg/check"
	"github.com/aucos/health-check/pkg/config"
)

// MockSender records sent messages.
type MockSender struct {
	Err     error
	To      string
	Subject string
	Body    string
	Calls   int
}

func (m *MockSender) Send(_ context.Context, to, subject, body string) error {
	m.Calls++
	m.To, m.Subject, m.Body = to, subject, body
	return m.Err
}

func TestCheckSuccess(t *testing.T) {
	sender := &MockSender{}
	c := &Check{Recipient: "ops@example.com", Sender: sender}

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusOK, result.Status)
	assert.Equal(t, "Mail connection successful. Test email sent to ops@example.com", result.Message)
	assert.Equal(t, 1, sender.Calls)
	assert.Equal(t, "ops@example.com", sender.To)
	assert.Equal(t, "Health Check", sender.Subject)
	assert.Equal(t, "Health check test email", sender.Body)
}

func TestCheckMissingRecipient(t *testing.T) {
	sender := &MockSender{}
	c := &Check{Recipient: "", Sender: sender}

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusFail, result.Status)
	assert.Equal(t, "The environment variable HEALTHCHECK_MAIL_TEST_RECIPIENT is not set.", result.Message)
	assert.Empty(t, result.Details)
	assert.Zero(t, sender.Calls, "sender must not be invoked without a recipient")
}

func TestCheckTransportFailure(t *testing.T) {
	sender := &MockSender{Err: errors.New("dial tcp 127.0.0.1:587: connect: connection refused")}
	c := &Check{Recipient: "ops@example.com", Sender: sender}

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusFail, result.Status)
	assert.Equal(t, "Mail connection failed:", result.Message)
	assert.Equal(t, []string{"dial tcp 127.0.0.1:587: connect: connection refused"}, result.Details)
	assert.ErrorIs(t, result.Err, sender.Err)
}

func TestNewSMTPSender(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{
		Host:        "smtp.example.com",
		Port:        2525,
		Username:    "user",
		Password:    "pass",
		Encryption:  config.EncryptionTLS,
		FromAddress: "noreply@example.com",
		FromName:    "Health Check",
		Timeout:     3 * time.Second,
	})

	assert.Equal(t, "smtp.example.com", s.Host)
	assert.Equal(t, 2525, s.Port)
	assert.Equal(t, config.EncryptionTLS, s.Encryption)
	assert.Equal(t, 3*time.Second, s.Timeout)
}

func TestSMTPSenderClientOptions(t *testing.T) {
	tests := []struct {
		name     string
		sender   SMTPSender
		wantOpts int
	}{
		{"plain relay", SMTPSender{Port: 25, Encryption: config.EncryptionNone}, 2},
		{"starttls with timeout", SMTPSender{Port: 587, Encryption: config.EncryptionStartTLS, Timeout: time.Second}, 3},
		{"tls with auth", SMTPSender{Port: 465, Encryption: config.EncryptionTLS, Username: "u", Password: "p"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.sender.clientOptions(), tt.wantOpts)
		})
	}
}

func TestSMTPSenderRejectsInvalidAddresses(t *testing.T) {
	t.Run("recipient", func(t *testing.T) {
		s := &SMTPSender{Host: "localhost", Port: 25, FromAddress: "noreply@example.com"}

		err := s.Send(context.Background(), "not an address", Subject, Body)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid recipient")
	})

	t.Run("sender", func(t *testing.T) {
		s := &SMTPSender{Host: "localhost", Port: 25, FromAddress: "@@"}

		err := s.Send(context.Background(), "ops@example.com", Subject, Body)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid from address")
	})
}
