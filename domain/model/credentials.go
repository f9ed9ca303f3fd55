package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Platform is the closed set of publishing targets.
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformTwitter  Platform = "twitter"
)

func (p Platform) Valid() bool {
	return p == PlatformLinkedIn || p == PlatformTwitter
}

// UserCredentials holds per-platform API credentials for one user, one
// document per user. Secret-class fields (tokens, secrets) are stored
// encrypted; use CredentialsUsecase.Decrypt for a plaintext view.
type UserCredentials struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    bson.ObjectID `json:"userId" bson:"userId"`
	Platforms Platforms     `json:"platforms" bson:"platforms"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type Platforms struct {
	LinkedIn LinkedInCredentials `json:"linkedin" bson:"linkedin"`
	Twitter  TwitterCredentials  `json:"twitter" bson:"twitter"`
}

type LinkedInCredentials struct {
	Enabled      bool       `json:"enabled" bson:"enabled"`
	AccessToken  string     `json:"accessToken,omitempty" bson:"accessToken,omitempty"`
	RefreshToken string     `json:"refreshToken,omitempty" bson:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	ClientID     string     `json:"clientId,omitempty" bson:"clientId,omitempty"`
	ClientSecret string     `json:"clientSecret,omitempty" bson:"clientSecret,omitempty"`
	ProfileID    string     `json:"profileId,omitempty" bson:"profileId,omitempty"`
	ProfileName  string     `json:"profileName,omitempty" bson:"profileName,omitempty"`
}

type TwitterCredentials struct {
	Enabled      bool   `json:"enabled" bson:"enabled"`
	APIKey       string `json:"apiKey,omitempty" bson:"apiKey,omitempty"`
	APISecret    string `json:"apiSecret,omitempty" bson:"apiSecret,omitempty"`
	AccessToken  string `json:"accessToken,omitempty" bson:"accessToken,omitempty"`
	AccessSecret string `json:"accessSecret,omitempty" bson:"accessSecret,omitempty"`
	Username     string `json:"username,omitempty" bson:"username,omitempty"`
	UserID       string `json:"userId,omitempty" bson:"userId,omitempty"`
}

// DecryptedCredentials is the on-demand plaintext projection of a
// UserCredentials document. It is never persisted.
type DecryptedCredentials struct {
	LinkedIn LinkedInCredentials
	Twitter  TwitterCredentials
}

// RedactedCredentials is the safe view returned by GET /api/credentials.
type RedactedCredentials struct {
	Platforms RedactedPlatforms `json:"platforms"`
}

type RedactedPlatforms struct {
	LinkedIn RedactedLinkedIn `json:"linkedin"`
	Twitter  RedactedTwitter  `json:"twitter"`
}

type RedactedLinkedIn struct {
	Enabled     bool   `json:"enabled"`
	Connected   bool   `json:"connected"`
	ProfileName string `json:"profileName,omitempty"`
	ProfileID   string `json:"profileId,omitempty"`
}

type RedactedTwitter struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	Username  string `json:"username,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

func (c *UserCredentials) Redacted() RedactedCredentials {
	return RedactedCredentials{
		Platforms: RedactedPlatforms{
			LinkedIn: RedactedLinkedIn{
				Enabled:     c.Platforms.LinkedIn.Enabled,
				Connected:   c.Platforms.LinkedIn.AccessToken != "",
				ProfileName: c.Platforms.LinkedIn.ProfileName,
				ProfileID:   c.Platforms.LinkedIn.ProfileID,
			},
			Twitter: RedactedTwitter{
				Enabled:   c.Platforms.Twitter.Enabled,
				Connected: c.Platforms.Twitter.AccessToken != "",
				Username:  c.Platforms.Twitter.Username,
				UserID:    c.Platforms.Twitter.UserID,
			},
		},
	}
}

type ReqLinkedInCredentials struct {
	ClientID     string     `json:"clientId"`
	ClientSecret string     `json:"clientSecret"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	ProfileID    string     `json:"profileId"`
	ProfileName  string     `json:"profileName"`
}

type ReqTwitterCredentials struct {
	APIKey        string `json:"apiKey"`
	APISecret     string `json:"apiSecret"`
	AccessToken   string `json:"accessToken"`
	AccessSecret  string `json:"accessSecret"`
	Username      string `json:"username"`
	TwitterUserID string `json:"twitterUserId"`
}
