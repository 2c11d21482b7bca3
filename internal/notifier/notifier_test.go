package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"followerwatch/internal/config"
)

func TestNewEvent(t *testing.T) {
	fresh := []string{"alice", "bob"}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	ev := NewEvent("testuser", fresh, now)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "testuser", ev.Username)
	assert.Equal(t, []string{"alice", "bob"}, ev.NewFollowers)
	assert.Equal(t, 2, ev.Count)
	assert.Equal(t, time.UTC, ev.Timestamp.Location())

	fresh[0] = "mallory" // the event must own its slice
	assert.Equal(t, []string{"alice", "bob"}, ev.NewFollowers)

	other := NewEvent("testuser", ev.NewFollowers, now)
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestNew_SelectsVariant(t *testing.T) {
	n, err := New(config.Notify{Method: config.MethodWebhook, WebhookURL: "https://hooks.example.com/x"})
	require.NoError(t, err)
	assert.IsType(t, &Webhook{}, n)

	n, err = New(config.Notify{Method: config.MethodEmail, Email: config.Email{SMTPServer: "smtp.example.com", SMTPPort: 587}})
	require.NoError(t, err)
	assert.IsType(t, &Email{}, n)

	_, err = New(config.Notify{Method: "pigeon"})
	assert.Error(t, err)
}
