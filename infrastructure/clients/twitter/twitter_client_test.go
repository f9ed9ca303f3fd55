package twitter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/clients/twitter"
)

func fullCredentials() *model.DecryptedCredentials {
	return &model.DecryptedCredentials{
		Twitter: model.TwitterCredentials{
			APIKey:       "api-key",
			APISecret:    "api-secret",
			AccessToken:  "access-token",
			AccessSecret: "access-secret",
		},
	}
}

func TestPublish_RequiresAllCredentials(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	client := twitter.NewClient(&twitter.Config{APIBaseURL: srv.URL})

	creds := fullCredentials()
	creds.Twitter.AccessSecret = ""

	_, err := client.Publish(context.Background(), creds, "hello")
	assert.EqualError(t, err, "missing Twitter API credentials")
	assert.False(t, hit, "no network call should happen with incomplete credentials")
}

func TestPublish_PostsSignedTweet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/tweets", r.URL.Path)
		// User-context requests carry an OAuth1 signature.
		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "OAuth "))
		assert.Contains(t, auth, `oauth_consumer_key="api-key"`)
		assert.Contains(t, auth, `oauth_token="access-token"`)

		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "hello twitter", req["text"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "1790000000000000000", "text": "hello twitter"},
		})
	}))
	defer srv.Close()

	client := twitter.NewClient(&twitter.Config{APIBaseURL: srv.URL})

	result, err := client.Publish(context.Background(), fullCredentials(), "hello twitter")
	assert.NoError(t, err)
	assert.Equal(t, "1790000000000000000", result.RemoteID)
	assert.False(t, result.PostedAt.IsZero())
}

func TestPublish_ErrorClassification(t *testing.T) {
	tests := []struct {
		status      int
		wantMessage string
	}{
		{http.StatusUnauthorized, "Twitter authentication failed. Please reconfigure your API credentials."},
		{http.StatusForbidden, "Twitter API access denied. Please check your credentials and permissions."},
		{http.StatusTooManyRequests, "Twitter post failed with status 429"},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"detail":"upstream detail"}`))
		}))

		client := twitter.NewClient(&twitter.Config{APIBaseURL: srv.URL})
		_, err := client.Publish(context.Background(), fullCredentials(), "hello")
		srv.Close()

		var platformErr *repository.PlatformError
		assert.ErrorAs(t, err, &platformErr)
		assert.Equal(t, tt.status, platformErr.StatusCode)
		assert.Equal(t, tt.wantMessage, platformErr.Message)
		assert.Contains(t, platformErr.Body, "upstream detail")
	}
}
