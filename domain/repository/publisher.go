package repository

import (
	"context"
	"time"

	"social-publisher/domain/model"
)

// PlatformError carries a remote platform's HTTP status and response body so
// the handler boundary can classify it (401/403/426 get dedicated messages).
type PlatformError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *PlatformError) Error() string {
	return e.Message
}

// IPublisher posts one text update to an external platform. Implementations
// validate their own credential preconditions before any network call.
type IPublisher interface {
	Platform() model.Platform
	Publish(ctx context.Context, creds *model.DecryptedCredentials, content string) (*model.PlatformResult, error)
}

// LinkedInToken is the result of an authorization-code exchange.
type LinkedInToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

// LinkedInProfile is the resolved identity of the token owner.
type LinkedInProfile struct {
	ID      string
	Name    string
	Email   string
	Picture string
	URN     string
}

// ILinkedInAuth covers the OAuth side of the LinkedIn integration: building
// the authorization URL, exchanging the callback code and probing stored
// tokens.
type ILinkedInAuth interface {
	AuthorizationURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*LinkedInToken, error)
	UserInfo(ctx context.Context, accessToken string) (*LinkedInProfile, error)
	IsTokenValid(ctx context.Context, accessToken string) bool
	IsTokenExpired(expiry *time.Time) bool
}
