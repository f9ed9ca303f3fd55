package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/configuration"
	httpHandler "social-publisher/interfaces/http"
	"social-publisher/usecase"
)

type MockPublishUsecase struct {
	mock.Mock
}

func (m *MockPublishUsecase) Publish(ctx context.Context, userID string, platform model.Platform, content, postID string) (*model.PlatformResult, error) {
	args := m.Called(ctx, userID, platform, content, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformResult), args.Error(1)
}

func TestPublishHandler_PostToTwitter_Success(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformTwitter, "hello", "").
		Return(&model.PlatformResult{RemoteID: "1234567890"}, nil).
		Once()

	w := performJSON(handler.PostToTwitter, http.MethodPost, "/api/post/twitter", "/api/post/twitter", userID, map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "twitter", res["platform"])
	assert.Equal(t, "1234567890", res["tweetId"])
	mockUsecase.AssertExpectations(t)
}

func TestPublishHandler_PostToLinkedIn_Success(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	postID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformLinkedIn, "hello", postID).
		Return(&model.PlatformResult{RemoteID: "urn:li:share:42"}, nil).
		Once()

	w := performJSON(handler.PostToLinkedIn, http.MethodPost, "/api/post/linkedin", "/api/post/linkedin", userID, map[string]string{
		"content": "hello",
		"postId":  postID,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "linkedin", res["platform"])
	assert.Equal(t, "urn:li:share:42", res["postId"])
}

func TestPublishHandler_EmptyContent(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformTwitter, "", "").
		Return(nil, usecase.ErrContentNeeded).
		Once()

	w := performJSON(handler.PostToTwitter, http.MethodPost, "/api/post/twitter", "/api/post/twitter", userID, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "Content is required and must be a non-empty string", res["message"])
}

func TestPublishHandler_NotConfigured(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformTwitter, "hello", "").
		Return(nil, &usecase.ConfigError{Msg: "Twitter not configured. Please add your Twitter API credentials first."}).
		Once()

	w := performJSON(handler.PostToTwitter, http.MethodPost, "/api/post/twitter", "/api/post/twitter", userID, map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "Twitter not configured. Please add your Twitter API credentials first.", res["message"])
}

func TestPublishHandler_LinkedInUnauthorized_IncludesReauthURL(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformLinkedIn, "hello", "").
		Return(nil, &repository.PlatformError{
			StatusCode: http.StatusUnauthorized,
			Message:    "LinkedIn access token is invalid or expired.",
		}).
		Once()

	w := performJSON(handler.PostToLinkedIn, http.MethodPost, "/api/post/linkedin", "/api/post/linkedin", userID, map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, true, res["needsReauth"])
	assert.Equal(t, configuration.C.App.BaseURL+"/auth/linkedin/login", res["reAuthUrl"])
}

func TestPublishHandler_PlatformForbidden(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformTwitter, "hello", "").
		Return(nil, &repository.PlatformError{
			StatusCode: http.StatusForbidden,
			Message:    "Twitter API access denied. Please check your credentials and permissions.",
		}).
		Once()

	w := performJSON(handler.PostToTwitter, http.MethodPost, "/api/post/twitter", "/api/post/twitter", userID, map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublishHandler_UpstreamFailure_SurfacesBody(t *testing.T) {
	mockUsecase := new(MockPublishUsecase)
	handler := httpHandler.NewPublishHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Publish", mock.Anything, userID, model.PlatformTwitter, "hello", "").
		Return(nil, &repository.PlatformError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Twitter post failed with status 503",
			Body:       `{"detail":"over capacity"}`,
		}).
		Once()

	w := performJSON(handler.PostToTwitter, http.MethodPost, "/api/post/twitter", "/api/post/twitter", userID, map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeBody(t, w)
	assert.Contains(t, res["error"], "over capacity")
}
