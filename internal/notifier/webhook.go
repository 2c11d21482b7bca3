package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"followerwatch/internal/logger"
)

type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
}

// webhookPayload is the wire shape consumers depend on; do not rename keys.
type webhookPayload struct {
	Event        string   `json:"event"`
	Username     string   `json:"username"`
	NewFollowers []string `json:"new_followers"`
	Count        int      `json:"count"`
	Timestamp    string   `json:"timestamp"`
}

// Deliver issues a single POST. A non-2xx response or transport error is
// returned to the caller; there is no retry.
func (w *Webhook) Deliver(ctx context.Context, ev Event) error {
	payload := webhookPayload{
		Event:        "new_followers",
		Username:     ev.Username,
		NewFollowers: ev.NewFollowers,
		Count:        ev.Count,
		Timestamp:    ev.Timestamp.Format(time.RFC3339),
	}
	if payload.NewFollowers == nil {
		payload.NewFollowers = []string{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook status=%d", resp.StatusCode)
	}
	logger.Infof("webhook notification sent for %d new follower(s)", ev.Count)
	return nil
}

func (w *Webhook) Check() error {
	u, err := url.Parse(w.URL)
	if err != nil {
		return fmt.Errorf("webhook url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("webhook url %q must be absolute http(s)", w.URL)
	}
	return nil
}
