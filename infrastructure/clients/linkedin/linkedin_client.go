package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
	linkedinoauth "golang.org/x/oauth2/linkedin"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/logger"
)

const (
	defaultAPIBaseURL = "https://api.linkedin.com"
	defaultAuthURL    = "https://www.linkedin.com/oauth/v2/authorization"

	// LinkedIn tokens run 60 days; used when the exchange response omits
	// expires_in.
	defaultTokenLifetime = 60 * 24 * time.Hour

	defaultTimeout = 15 * time.Second
)

// Scopes requested on every authorization. w_member_social is what allows
// posting; the rest feed the userinfo profile resolution.
var Scopes = []string{"openid", "profile", "email", "w_member_social"}

// Config holds everything the client needs. APIBaseURL and Endpoint are
// overridable for tests against a stub server.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIBaseURL   string
	Endpoint     oauth2.Endpoint
	Timeout      time.Duration

	// AssumeValidOnAmbiguousError controls the remote validity probe: when a
	// userinfo call fails with anything other than 401, the token is treated
	// as possibly still valid. Fail-open on purpose; a flaky LinkedIn outage
	// should not lock every user out of posting.
	AssumeValidOnAmbiguousError bool
}

type Client struct {
	conf       *oauth2.Config
	apiBase    string
	httpClient *http.Client

	assumeValidOnAmbiguousError bool
}

func NewClient(cfg *Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = linkedinoauth.Endpoint
	}
	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       Scopes,
			Endpoint:     endpoint,
		},
		apiBase:                     apiBase,
		httpClient:                  &http.Client{Timeout: timeout},
		assumeValidOnAmbiguousError: cfg.AssumeValidOnAmbiguousError,
	}
}

func (c *Client) Platform() model.Platform { return model.PlatformLinkedIn }

// AuthorizationURL builds the LinkedIn consent URL for the configured app.
func (c *Client) AuthorizationURL(state string) (string, error) {
	if c.conf.ClientID == "" {
		return "", errors.New("LinkedIn client ID is required")
	}
	return c.conf.AuthCodeURL(state), nil
}

type authQuery struct {
	ResponseType string `url:"response_type"`
	ClientID     string `url:"client_id"`
	RedirectURI  string `url:"redirect_uri"`
	Scope        string `url:"scope"`
	State        string `url:"state"`
}

// AuthorizationURLFor builds a consent URL for a user-provided client id, for
// accounts connected with their own LinkedIn app instead of ours.
func AuthorizationURLFor(clientID, redirectURI, state string) (string, error) {
	if clientID == "" {
		return "", errors.New("LinkedIn client ID is required")
	}
	v, err := query.Values(authQuery{
		ResponseType: "code",
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		Scope:        strings.Join(Scopes, " "),
		State:        state,
	})
	if err != nil {
		return "", err
	}
	return defaultAuthURL + "?" + v.Encode(), nil
}

// ExchangeCode trades the callback authorization code for an access token.
// One POST; expiry defaults to 60 days when the response has no expires_in.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*repository.LinkedInToken, error) {
	if c.conf.ClientID == "" || c.conf.ClientSecret == "" {
		return nil, errors.New("LinkedIn client ID and client secret are required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while exchanging LinkedIn code")
		return nil, err
	}
	expiresAt := tok.Expiry
	expiresIn := int64(0)
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(defaultTokenLifetime)
		expiresIn = int64(defaultTokenLifetime / time.Second)
	} else {
		expiresIn = int64(time.Until(expiresAt) / time.Second)
	}
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &repository.LinkedInToken{
		AccessToken: tok.AccessToken,
		TokenType:   tokenType,
		ExpiresIn:   expiresIn,
		ExpiresAt:   expiresAt,
	}, nil
}

type userInfoResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// UserInfo resolves the token owner via the OpenID userinfo endpoint, falling
// back to the legacy profile endpoint when userinfo is unavailable.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*repository.LinkedInProfile, error) {
	profile, err := c.userInfo(ctx, accessToken)
	if err == nil {
		return profile, nil
	}
	logger.GetLogger().WithField("error", err).Warn("userinfo failed, trying legacy profile endpoint")
	return c.userInfoLegacy(ctx, accessToken)
}

func (c *Client) userInfo(ctx context.Context, accessToken string) (*repository.LinkedInProfile, error) {
	body, err := c.get(ctx, c.apiBase+"/v2/userinfo", accessToken)
	if err != nil {
		return nil, err
	}
	var info userInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	// sub is either a full URN ("urn:li:person:ABC123") or a bare id.
	personID := info.Sub
	if idx := strings.LastIndex(info.Sub, ":"); idx != -1 {
		personID = info.Sub[idx+1:]
	}
	return &repository.LinkedInProfile{
		ID:      personID,
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
		URN:     info.Sub,
	}, nil
}

type legacyProfileResponse struct {
	ID        string `json:"id"`
	FirstName struct {
		Localized map[string]string `json:"localized"`
	} `json:"firstName"`
	LastName struct {
		Localized map[string]string `json:"localized"`
	} `json:"lastName"`
}

func (c *Client) userInfoLegacy(ctx context.Context, accessToken string) (*repository.LinkedInProfile, error) {
	body, err := c.get(ctx, c.apiBase+"/v2/people/~", accessToken)
	if err != nil {
		return nil, err
	}
	var legacy legacyProfileResponse
	if err := json.Unmarshal(body, &legacy); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(legacy.FirstName.Localized["en_US"] + " " + legacy.LastName.Localized["en_US"])
	return &repository.LinkedInProfile{
		ID:   legacy.ID,
		Name: name,
		URN:  legacy.ID,
	}, nil
}

// IsTokenValid probes the userinfo endpoint. A 401 means invalid or expired.
// Any other failure is ambiguous and resolved by the configured fail-open
// policy.
func (c *Client) IsTokenValid(ctx context.Context, accessToken string) bool {
	if accessToken == "" {
		return false
	}
	_, err := c.userInfo(ctx, accessToken)
	if err == nil {
		return true
	}
	var platformErr *repository.PlatformError
	if errors.As(err, &platformErr) && platformErr.StatusCode == http.StatusUnauthorized {
		return false
	}
	logger.GetLogger().WithField("error", err).Warn("Token validation unclear")
	return c.assumeValidOnAmbiguousError
}

// IsTokenExpired is the local expiry check: stored timestamp against the
// clock, no network call. A missing expiry counts as expired.
func (c *Client) IsTokenExpired(expiry *time.Time) bool {
	if expiry == nil {
		return true
	}
	return !time.Now().Before(*expiry)
}

type ugcPostRequest struct {
	Author          string                 `json:"author"`
	LifecycleState  string                 `json:"lifecycleState"`
	SpecificContent map[string]interface{} `json:"specificContent"`
	Visibility      map[string]string      `json:"visibility"`
}

// Publish posts a plain-text share. The author URN comes from the stored
// profile id when present, saving the profile-lookup round trip.
func (c *Client) Publish(ctx context.Context, creds *model.DecryptedCredentials, content string) (*model.PlatformResult, error) {
	accessToken := creds.LinkedIn.AccessToken
	if accessToken == "" {
		return nil, errors.New("LinkedIn access token is missing")
	}

	authorURN, err := c.resolveAuthorURN(ctx, accessToken, creds.LinkedIn.ProfileID)
	if err != nil {
		return nil, err
	}

	payload := ugcPostRequest{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary":    map[string]string{"text": content},
				"shareMediaCategory": "NONE",
			},
		},
		Visibility: map[string]string{"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/ugcPosts", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyPublishError(resp.StatusCode, body)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &model.PlatformResult{RemoteID: result.ID, PostedAt: time.Now().UTC()}, nil
}

func (c *Client) resolveAuthorURN(ctx context.Context, accessToken, profileID string) (string, error) {
	if profileID != "" {
		if strings.HasPrefix(profileID, "urn:li:person:") {
			return profileID, nil
		}
		return "urn:li:person:" + profileID, nil
	}
	profile, err := c.UserInfo(ctx, accessToken)
	if err != nil {
		return "", fmt.Errorf("could not resolve LinkedIn author: %w", err)
	}
	if strings.HasPrefix(profile.URN, "urn:li:person:") {
		return profile.URN, nil
	}
	return "urn:li:person:" + profile.ID, nil
}

func classifyPublishError(status int, body []byte) error {
	switch status {
	case http.StatusForbidden:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    "LinkedIn API access denied. Ensure your app has correct scopes (w_member_social, openid, profile, email) and proper permissions.",
			Body:       string(body),
		}
	case http.StatusUnauthorized:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    "LinkedIn access token is invalid or expired.",
			Body:       string(body),
		}
	case http.StatusUpgradeRequired:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    "LinkedIn API version issue.",
			Body:       string(body),
		}
	default:
		return &repository.PlatformError{
			StatusCode: status,
			Message:    fmt.Sprintf("LinkedIn post failed with status %d", status),
			Body:       string(body),
		}
	}
}

func (c *Client) get(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &repository.PlatformError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("LinkedIn request failed with status %d", resp.StatusCode),
			Body:       string(body),
		}
	}
	return body, nil
}
