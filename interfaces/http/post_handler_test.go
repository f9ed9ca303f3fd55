package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	httpHandler "social-publisher/interfaces/http"
	"social-publisher/usecase"
)

type MockPostUsecase struct {
	mock.Mock
}

func (m *MockPostUsecase) Create(ctx context.Context, userID string, req model.ReqCreatePost) (*model.Post, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostUsecase) Get(ctx context.Context, userID, postID string) (*model.Post, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostUsecase) List(ctx context.Context, userID string) ([]*model.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostUsecase) Update(ctx context.Context, userID, postID string, req model.ReqUpdatePost) (*model.Post, error) {
	args := m.Called(ctx, userID, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostUsecase) Delete(ctx context.Context, userID, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func TestPostHandler_Create(t *testing.T) {
	mockUsecase := new(MockPostUsecase)
	handler := httpHandler.NewPostHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Create", mock.Anything, userID, model.ReqCreatePost{
		Content:   "a draft",
		Platforms: []string{"twitter", "linkedin"},
	}).Return(&model.Post{Content: "a draft", Status: model.PostStatusPending}, nil).Once()

	w := performJSON(handler.Create, http.MethodPost, "/api/posts", "/api/posts", userID, map[string]interface{}{
		"content":   "a draft",
		"platforms": []string{"twitter", "linkedin"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody(t, w)
	post := res["post"].(map[string]interface{})
	assert.Equal(t, "a draft", post["content"])
	assert.Equal(t, "pending", post["status"])
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	mockUsecase := new(MockPostUsecase)
	handler := httpHandler.NewPostHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Get", mock.Anything, userID, "missing-id").
		Return(nil, usecase.ErrPostNotFound).
		Once()

	w := performJSON(handler.Get, http.MethodGet, "/api/posts/:id", "/api/posts/missing-id", userID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostHandler_Get_NotOwner(t *testing.T) {
	mockUsecase := new(MockPostUsecase)
	handler := httpHandler.NewPostHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Get", mock.Anything, userID, "other-post").
		Return(nil, usecase.ErrNotPostOwner).
		Once()

	w := performJSON(handler.Get, http.MethodGet, "/api/posts/:id", "/api/posts/other-post", userID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostHandler_List(t *testing.T) {
	mockUsecase := new(MockPostUsecase)
	handler := httpHandler.NewPostHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("List", mock.Anything, userID).
		Return([]*model.Post{
			{Content: "first"},
			{Content: "second"},
		}, nil).
		Once()

	w := performJSON(handler.List, http.MethodGet, "/api/posts", "/api/posts", userID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, float64(2), res["count"])
	posts := res["posts"].([]interface{})
	assert.Len(t, posts, 2)
}

func TestPostHandler_Delete(t *testing.T) {
	mockUsecase := new(MockPostUsecase)
	handler := httpHandler.NewPostHandler(mockUsecase)

	userID := bson.NewObjectID().Hex()
	mockUsecase.On("Delete", mock.Anything, userID, "post-1").Return(nil).Once()

	w := performJSON(handler.Delete, http.MethodDelete, "/api/posts/:id", "/api/posts/post-1", userID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, "Post deleted", res["message"])
	mockUsecase.AssertExpectations(t)
}
