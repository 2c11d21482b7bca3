package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient("mock_token_12345")
	c.BaseURL = url
	c.limiter = nil // no pacing in tests
	return c
}

func followerPage(logins ...string) []byte {
	page := make([]map[string]string, 0, len(logins))
	for _, l := range logins {
		page = append(page, map[string]string{"login": l})
	}
	raw, _ := json.Marshal(page)
	return raw
}

func TestClient_FollowersSinglePage(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "/users/testuser/followers", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Write(followerPage("zoe", "alice", "bob"))
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Followers(context.Background(), "testuser")
	require.NoError(t, err)

	assert.Equal(t, []string{"zoe", "alice", "bob"}, set.Logins(), "page order must be preserved")
	assert.Equal(t, "token mock_token_12345", gotAuth)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
}

func TestClient_FollowersPaginates(t *testing.T) {
	first := make([]string, perPage)
	for i := range first {
		first[i] = fmt.Sprintf("user%03d", i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write(followerPage(first...))
		case "2":
			w.Write(followerPage("last_one"))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Followers(context.Background(), "testuser")
	require.NoError(t, err)

	assert.Equal(t, perPage+1, set.Len())
	logins := set.Logins()
	assert.Equal(t, "user000", logins[0])
	assert.Equal(t, "last_one", logins[perPage])
}

func TestClient_FollowersErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		kind   Kind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, kind: KindAuth},
		{name: "forbidden", status: http.StatusForbidden, kind: KindAuth},
		{
			name:   "rate limited via 403",
			status: http.StatusForbidden,
			header: http.Header{"X-Ratelimit-Remaining": []string{"0"}},
			kind:   KindRateLimited,
		},
		{name: "rate limited via 429", status: http.StatusTooManyRequests, kind: KindRateLimited},
		{name: "unknown user", status: http.StatusNotFound, kind: KindNotFound},
		{name: "server error", status: http.StatusInternalServerError, kind: KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, vs := range tt.header {
					for _, v := range vs {
						w.Header().Set(k, v)
					}
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Followers(context.Background(), "testuser")
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.status, fe.Status)
		})
	}
}

func TestClient_FollowersNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Followers(context.Background(), "testuser")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindNetwork, fe.Kind)
}

func TestClient_FollowersBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Followers(context.Background(), "testuser")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindNetwork, fe.Kind)
}
