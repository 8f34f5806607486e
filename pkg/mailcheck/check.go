package mailcheck

import (
	"context"

	"github.com/aucos/health-check/pkg/check"
)

// Subject and Body make up the plaintext test message.
const (
	Subject = "Health Check"
	Body    = "Health check test email"
)

// RecipientEnv names the variable operators set to enable the check.
const RecipientEnv = "HEALTHCHECK_MAIL_TEST_RECIPIENT"

// Check sends a test message to the configured recipient.
type Check struct {
	Recipient string // empty means not configured
	Sender    Sender // injected for testing
}

// Run executes the mail transport check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "mail",
	}

	if c.Recipient == "" {
		return result.Failf("The environment variable %s is not set.", RecipientEnv)
	}

	if err := c.Sender.Send(ctx, c.Recipient, Subject, Body); err != nil {
		return result.Fail("Mail connection failed:", err)
	}

	return result.Passf("Mail connection successful. Test email sent to %s", c.Recipient)
}
