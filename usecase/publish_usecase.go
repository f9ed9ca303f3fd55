package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/logger"
)

// ConfigError is a precondition failure before any publish call: platform
// not configured, incomplete credentials, expired token. Handlers report
// these as 400.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

type IPublishUsecase interface {
	Publish(ctx context.Context, userID string, platform model.Platform, content, postID string) (*model.PlatformResult, error)
}

type publishUsecase struct {
	credentials ICredentialsUsecase
	postRepo    repository.IPost
	publishers  map[model.Platform]repository.IPublisher
	linkedin    repository.ILinkedInAuth
}

func NewPublishUsecase(
	credentials ICredentialsUsecase,
	postRepo repository.IPost,
	linkedinAuth repository.ILinkedInAuth,
	publishers ...repository.IPublisher,
) IPublishUsecase {
	m := make(map[model.Platform]repository.IPublisher, len(publishers))
	for _, p := range publishers {
		m[p.Platform()] = p
	}
	return &publishUsecase{credentials: credentials, postRepo: postRepo, publishers: m, linkedin: linkedinAuth}
}

// Publish runs one publish attempt: resolve and decrypt credentials, check
// platform preconditions, make exactly one remote call, and write exactly
// one outcome record. No retries.
func (u *publishUsecase) Publish(ctx context.Context, userID string, platform model.Platform, content, postID string) (*model.PlatformResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentNeeded
	}
	publisher, ok := u.publishers[platform]
	if !ok {
		return nil, &ConfigError{Msg: "Unsupported platform: " + string(platform)}
	}

	decrypted, err := u.resolveCredentials(ctx, userID, platform)
	if err != nil {
		u.recordFailure(ctx, userID, platform, content, postID, err)
		return nil, err
	}

	result, err := publisher.Publish(ctx, decrypted, content)
	if err != nil {
		u.recordFailure(ctx, userID, platform, content, postID, err)
		return nil, err
	}

	u.recordSuccess(ctx, userID, platform, content, postID, result)
	return result, nil
}

func (u *publishUsecase) resolveCredentials(ctx context.Context, userID string, platform model.Platform) (*model.DecryptedCredentials, error) {
	stored, err := u.credentials.GetStored(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch platform {
	case model.PlatformTwitter:
		if stored == nil || !stored.Platforms.Twitter.Enabled {
			return nil, &ConfigError{Msg: "Twitter not configured. Please add your Twitter API credentials first."}
		}
		decrypted := u.credentials.Decrypt(stored)
		tw := decrypted.Twitter
		if tw.APIKey == "" || tw.APISecret == "" || tw.AccessToken == "" || tw.AccessSecret == "" {
			return nil, &ConfigError{Msg: "Incomplete Twitter credentials. Please reconfigure your Twitter API access."}
		}
		return decrypted, nil
	case model.PlatformLinkedIn:
		if stored == nil || !stored.Platforms.LinkedIn.Enabled {
			return nil, &ConfigError{Msg: "LinkedIn not configured. Please connect your LinkedIn account first."}
		}
		decrypted := u.credentials.Decrypt(stored)
		if decrypted.LinkedIn.AccessToken == "" {
			return nil, &ConfigError{Msg: "LinkedIn access token missing. Please reconnect your LinkedIn account."}
		}
		// Local expiry check only; the remote probe lives in token-status.
		if exp := stored.Platforms.LinkedIn.ExpiresAt; exp != nil && u.linkedin.IsTokenExpired(exp) {
			return nil, &ConfigError{Msg: "LinkedIn access token has expired. Please reconnect your LinkedIn account."}
		}
		return decrypted, nil
	default:
		return nil, &ConfigError{Msg: "Unsupported platform: " + string(platform)}
	}
}

func (u *publishUsecase) recordSuccess(ctx context.Context, userID string, platform model.Platform, content, postID string, result *model.PlatformResult) {
	if postID != "" {
		post, err := u.postRepo.GetByID(ctx, postID)
		if err != nil || post == nil {
			logger.GetLogger().WithField("postId", postID).Warn("Publish succeeded but post record not found")
			return
		}
		post.Status = model.PostStatusPosted
		applyOutcome(post, platform, model.PlatformStatusSuccess, result, "")
		if err := u.postRepo.Update(ctx, post); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while updating post after publish")
		}
		return
	}
	post := &model.Post{
		Content:   content,
		Platforms: []string{string(platform)},
		Status:    model.PostStatusPosted,
	}
	if oid, err := bson.ObjectIDFromHex(userID); err == nil {
		post.User = oid
	}
	applyOutcome(post, platform, model.PlatformStatusSuccess, result, "")
	if _, err := u.postRepo.Create(ctx, post); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating post record after publish")
	}
}

// recordFailure persists a failed outcome best-effort. Its own errors are
// logged and swallowed so they never mask the primary failure.
func (u *publishUsecase) recordFailure(ctx context.Context, userID string, platform model.Platform, content, postID string, cause error) {
	if postID != "" {
		post, err := u.postRepo.GetByID(ctx, postID)
		if err != nil || post == nil {
			return
		}
		post.Status = model.PostStatusFailed
		applyOutcome(post, platform, model.PlatformStatusFailed, nil, cause.Error())
		if err := u.postRepo.Update(ctx, post); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while marking post failed")
		}
		return
	}
	post := &model.Post{
		Content:   content,
		Platforms: []string{string(platform)},
		Status:    model.PostStatusFailed,
	}
	if oid, err := bson.ObjectIDFromHex(userID); err == nil {
		post.User = oid
	}
	applyOutcome(post, platform, model.PlatformStatusFailed, nil, cause.Error())
	if _, err := u.postRepo.Create(ctx, post); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating failed post record")
	}
}

func applyOutcome(post *model.Post, platform model.Platform, status string, result *model.PlatformResult, errMsg string) {
	post.Error = errMsg
	switch platform {
	case model.PlatformTwitter:
		post.PlatformStatus.Twitter = status
		if result != nil {
			post.PlatformData.Twitter = &model.TwitterPostData{TweetID: result.RemoteID, PostedAt: result.PostedAt}
		}
	case model.PlatformLinkedIn:
		post.PlatformStatus.LinkedIn = status
		if result != nil {
			post.PlatformData.LinkedIn = &model.LinkedInPostData{PostID: result.RemoteID, PostedAt: result.PostedAt}
		}
	}
}
