// Package notifier delivers new-follower notifications over email or a
// webhook. Exactly one variant is configured per run; there is no fallback.
package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"followerwatch/internal/config"
)

// Event describes one batch of newly observed followers. It is built once
// per detected diff and handed to a single Deliver call.
type Event struct {
	ID           string
	Username     string
	NewFollowers []string
	Count        int
	Timestamp    time.Time
}

func NewEvent(username string, newFollowers []string, now time.Time) Event {
	followers := make([]string, len(newFollowers))
	copy(followers, newFollowers)
	return Event{
		ID:           uuid.NewString(),
		Username:     username,
		NewFollowers: followers,
		Count:        len(followers),
		Timestamp:    now.UTC(),
	}
}

// Notifier is the delivery capability. Check validates the configured
// endpoint without performing any network I/O; --test relies on it.
type Notifier interface {
	Deliver(ctx context.Context, ev Event) error
	Check() error
}

// New selects the notifier variant named by the configuration.
func New(cfg config.Notify) (Notifier, error) {
	switch cfg.Method {
	case config.MethodEmail:
		return NewEmail(cfg.Email), nil
	case config.MethodWebhook:
		return NewWebhook(cfg.WebhookURL), nil
	default:
		return nil, errors.Errorf("unknown notification method: %q", cfg.Method)
	}
}
