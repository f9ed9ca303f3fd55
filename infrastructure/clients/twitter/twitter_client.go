package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/logger"
)

const (
	defaultAPIBaseURL = "https://api.twitter.com"
	defaultTimeout    = 15 * time.Second
)

// Client posts tweets with per-call user-context credentials. Stateless: a
// fresh OAuth1-signing transport is built from the four credential strings on
// every publish.
type Client struct {
	apiBase string
	timeout time.Duration
}

type Config struct {
	APIBaseURL string
	Timeout    time.Duration
}

func NewClient(cfg *Config) *Client {
	apiBase := defaultAPIBaseURL
	timeout := defaultTimeout
	if cfg != nil {
		if cfg.APIBaseURL != "" {
			apiBase = cfg.APIBaseURL
		}
		if cfg.Timeout != 0 {
			timeout = cfg.Timeout
		}
	}
	return &Client{apiBase: apiBase, timeout: timeout}
}

func (c *Client) Platform() model.Platform { return model.PlatformTwitter }

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Publish creates one tweet. All four credential strings must be present
// before any network call is made.
func (c *Client) Publish(ctx context.Context, creds *model.DecryptedCredentials, content string) (*model.PlatformResult, error) {
	tw := creds.Twitter
	if tw.APIKey == "" || tw.APISecret == "" || tw.AccessToken == "" || tw.AccessSecret == "" {
		return nil, errors.New("missing Twitter API credentials")
	}

	config := oauth1.NewConfig(tw.APIKey, tw.APISecret)
	token := oauth1.NewToken(tw.AccessToken, tw.AccessSecret)
	httpClient := config.Client(ctx, token)
	httpClient.Timeout = c.timeout

	raw, err := json.Marshal(tweetRequest{Text: content})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/2/tweets", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while posting tweet")
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyError(resp.StatusCode, body)
	}

	var result tweetResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &model.PlatformResult{RemoteID: result.Data.ID, PostedAt: time.Now().UTC()}, nil
}

func classifyError(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    "Twitter authentication failed. Please reconfigure your API credentials.",
			Body:       string(body),
		}
	case http.StatusForbidden:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    "Twitter API access denied. Please check your credentials and permissions.",
			Body:       string(body),
		}
	default:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    fmt.Sprintf("Twitter post failed with status %d", status),
			Body:       string(body),
		}
	}
}
