package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/secrets"
)

var (
	ErrLinkedInClientIDRequired = errors.New("LinkedIn Client ID is required")
	ErrTwitterFieldsRequired    = errors.New("All Twitter API credentials are required (API Key, API Secret, Access Token, Access Secret)")
	ErrInvalidPlatform          = errors.New("Invalid platform")
)

type ICredentialsUsecase interface {
	Get(ctx context.Context, userID string) (*model.RedactedCredentials, error)
	GetStored(ctx context.Context, userID string) (*model.UserCredentials, error)
	SaveLinkedIn(ctx context.Context, userID string, req model.ReqLinkedInCredentials) error
	SaveTwitter(ctx context.Context, userID string, req model.ReqTwitterCredentials) error
	Disable(ctx context.Context, userID string, platform model.Platform) error
	Decrypt(creds *model.UserCredentials) *model.DecryptedCredentials
}

type credentialsUsecase struct {
	credsRepo repository.IUserCredentials
	cipher    *secrets.Cipher
}

func NewCredentialsUsecase(credsRepo repository.IUserCredentials, cipher *secrets.Cipher) ICredentialsUsecase {
	return &credentialsUsecase{credsRepo: credsRepo, cipher: cipher}
}

// Get returns the redacted view, lazily creating an empty credentials
// document the first time a user asks.
func (u *credentialsUsecase) Get(ctx context.Context, userID string) (*model.RedactedCredentials, error) {
	creds, err := u.credsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		oid, err := bson.ObjectIDFromHex(userID)
		if err != nil {
			return nil, repository.ErrNotFound
		}
		creds, err = u.credsRepo.Upsert(ctx, &model.UserCredentials{UserID: oid})
		if err != nil {
			return nil, err
		}
	}
	view := creds.Redacted()
	return &view, nil
}

func (u *credentialsUsecase) GetStored(ctx context.Context, userID string) (*model.UserCredentials, error) {
	return u.credsRepo.GetByUserID(ctx, userID)
}

func (u *credentialsUsecase) SaveLinkedIn(ctx context.Context, userID string, req model.ReqLinkedInCredentials) error {
	if req.ClientID == "" {
		return ErrLinkedInClientIDRequired
	}
	creds, err := u.loadOrNew(ctx, userID)
	if err != nil {
		return err
	}
	creds.Platforms.LinkedIn = model.LinkedInCredentials{
		Enabled:      true,
		ClientID:     req.ClientID,
		ClientSecret: u.cipher.EncryptString(req.ClientSecret),
		AccessToken:  u.cipher.EncryptString(req.AccessToken),
		RefreshToken: u.cipher.EncryptString(req.RefreshToken),
		ExpiresAt:    req.ExpiresAt,
		ProfileID:    req.ProfileID,
		ProfileName:  req.ProfileName,
	}
	_, err = u.credsRepo.Upsert(ctx, creds)
	return err
}

func (u *credentialsUsecase) SaveTwitter(ctx context.Context, userID string, req model.ReqTwitterCredentials) error {
	if req.APIKey == "" || req.APISecret == "" || req.AccessToken == "" || req.AccessSecret == "" {
		return ErrTwitterFieldsRequired
	}
	creds, err := u.loadOrNew(ctx, userID)
	if err != nil {
		return err
	}
	creds.Platforms.Twitter = model.TwitterCredentials{
		Enabled:      true,
		APIKey:       req.APIKey,
		APISecret:    u.cipher.EncryptString(req.APISecret),
		AccessToken:  u.cipher.EncryptString(req.AccessToken),
		AccessSecret: u.cipher.EncryptString(req.AccessSecret),
		Username:     req.Username,
		UserID:       req.TwitterUserID,
	}
	_, err = u.credsRepo.Upsert(ctx, creds)
	return err
}

// Disable flips enabled off and wipes access-token-class secrets only. API
// keys and profile metadata survive, so re-enabling Twitter needs no re-entry
// while LinkedIn needs a fresh OAuth round trip.
func (u *credentialsUsecase) Disable(ctx context.Context, userID string, platform model.Platform) error {
	if !platform.Valid() {
		return ErrInvalidPlatform
	}
	creds, err := u.credsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if creds == nil {
		return nil
	}
	switch platform {
	case model.PlatformLinkedIn:
		creds.Platforms.LinkedIn.Enabled = false
		creds.Platforms.LinkedIn.AccessToken = ""
		creds.Platforms.LinkedIn.RefreshToken = ""
	case model.PlatformTwitter:
		creds.Platforms.Twitter.Enabled = false
		creds.Platforms.Twitter.AccessToken = ""
		creds.Platforms.Twitter.AccessSecret = ""
	}
	_, err = u.credsRepo.Upsert(ctx, creds)
	return err
}

// Decrypt is a pure projection to the plaintext view. A field that fails to
// decrypt comes back empty rather than failing the whole record.
func (u *credentialsUsecase) Decrypt(creds *model.UserCredentials) *model.DecryptedCredentials {
	out := &model.DecryptedCredentials{
		LinkedIn: creds.Platforms.LinkedIn,
		Twitter:  creds.Platforms.Twitter,
	}
	out.LinkedIn.AccessToken = u.cipher.DecryptString(creds.Platforms.LinkedIn.AccessToken)
	out.LinkedIn.RefreshToken = u.cipher.DecryptString(creds.Platforms.LinkedIn.RefreshToken)
	out.LinkedIn.ClientSecret = u.cipher.DecryptString(creds.Platforms.LinkedIn.ClientSecret)
	out.Twitter.APISecret = u.cipher.DecryptString(creds.Platforms.Twitter.APISecret)
	out.Twitter.AccessToken = u.cipher.DecryptString(creds.Platforms.Twitter.AccessToken)
	out.Twitter.AccessSecret = u.cipher.DecryptString(creds.Platforms.Twitter.AccessSecret)
	return out
}

func (u *credentialsUsecase) loadOrNew(ctx context.Context, userID string) (*model.UserCredentials, error) {
	creds, err := u.credsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		oid, err := bson.ObjectIDFromHex(userID)
		if err != nil {
			return nil, repository.ErrNotFound
		}
		creds = &model.UserCredentials{UserID: oid}
	}
	return creds, nil
}
