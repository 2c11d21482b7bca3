package config

import (
	"github.com/pkg/errors"
)

func (g *GitHub) Validate() error {
	if g.Token == "" {
		return errors.New("GITHUB_TOKEN is required")
	}

	if g.Username == "" {
		return errors.New("GITHUB_USERNAME is required")
	}

	return nil
}

func (e *Email) Validate() error {
	if e.From == "" || e.Password == "" || e.To == "" {
		return errors.New("email configuration incomplete (EMAIL_FROM, EMAIL_PASSWORD, EMAIL_TO required)")
	}

	if e.SMTPServer == "" {
		return errors.New("EMAIL_SMTP_SERVER must not be empty")
	}

	if e.SMTPPort <= 0 || e.SMTPPort > 65535 {
		return errors.Errorf("EMAIL_SMTP_PORT out of range: %d", e.SMTPPort)
	}

	return nil
}

func (n *Notify) Validate() error {
	switch n.Method {
	case MethodEmail:
		return n.Email.Validate()
	case MethodWebhook:
		if n.WebhookURL == "" {
			return errors.New("WEBHOOK_URL is required for webhook notifications")
		}
		return nil
	default:
		return errors.Errorf("unknown NOTIFICATION_METHOD: %q (use %q or %q)", n.Method, MethodEmail, MethodWebhook)
	}
}

func (c *Config) Validate() error {
	if err := c.GitHub.Validate(); err != nil {
		return err
	}

	if err := c.Notify.Validate(); err != nil {
		return err
	}

	if c.CheckInterval <= 0 {
		return errors.New("CHECK_INTERVAL must be a positive number of seconds")
	}

	if c.FollowersFile == "" {
		return errors.New("FOLLOWERS_FILE must not be empty")
	}

	return nil
}
