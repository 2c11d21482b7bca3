// Package github fetches a user's follower list from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"followerwatch/internal/follower"
	"followerwatch/internal/logger"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github.v3+json"
	userAgent      = "followerwatch"
	perPage        = 100
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		// Pace page requests; pagination is the only hot path.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Followers collects every page of the user's follower list into one set,
// preserving the order followers appear in the page sequence. Any failure
// returns a *FetchError and no partial set.
func (c *Client) Followers(ctx context.Context, username string) (*follower.Set, error) {
	set := follower.NewSet()
	for page := 1; ; page++ {
		logins, err := c.fetchPage(ctx, username, page)
		if err != nil {
			return nil, err
		}
		for _, login := range logins {
			set.Add(login)
		}
		if len(logins) < perPage {
			break
		}
	}
	logger.Infof("found %d current followers", set.Len())
	return set, nil
}

func (c *Client) fetchPage(ctx context.Context, username string, page int) ([]string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Kind: KindNetwork, cause: err}
		}
	}

	url := fmt.Sprintf("%s/users/%s/followers?page=%d&per_page=%d", c.BaseURL, username, page, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, cause: err}
	}
	req.Header.Set("Authorization", "token "+c.Token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp, body)
	}

	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Kind: KindNetwork, Status: resp.StatusCode, Message: "unexpected payload"}
	}
	var logins []string
	gjson.GetBytes(body, "#.login").ForEach(func(_, value gjson.Result) bool {
		logins = append(logins, value.String())
		return true
	})
	return logins, nil
}

func classifyStatus(resp *http.Response, body []byte) *FetchError {
	msg := gjson.GetBytes(body, "message").String()
	fe := &FetchError{Status: resp.StatusCode, Message: msg}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		fe.Kind = KindAuth
	case http.StatusForbidden:
		// GitHub reports primary rate limiting as 403 with a drained quota.
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			fe.Kind = KindRateLimited
		} else {
			fe.Kind = KindAuth
		}
	case http.StatusNotFound:
		fe.Kind = KindNotFound
	case http.StatusTooManyRequests:
		fe.Kind = KindRateLimited
	default:
		fe.Kind = KindNetwork
	}
	return fe
}
