package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	"social-publisher/usecase"
)

func TestPostUsecase_Create(t *testing.T) {
	mockRepo := new(MockPostRepository)
	userID := bson.NewObjectID()

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.Content == "draft" && p.User == userID && p.Status == model.PostStatusPending
	})).Return(&model.Post{Content: "draft", User: userID}, nil).Once()

	uc := usecase.NewPostUsecase(mockRepo)

	post, err := uc.Create(context.Background(), userID.Hex(), model.ReqCreatePost{
		Content:   "draft",
		Platforms: []string{"twitter"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "draft", post.Content)
	mockRepo.AssertExpectations(t)
}

func TestPostUsecase_Create_EmptyContent(t *testing.T) {
	mockRepo := new(MockPostRepository)
	uc := usecase.NewPostUsecase(mockRepo)

	_, err := uc.Create(context.Background(), bson.NewObjectID().Hex(), model.ReqCreatePost{Content: "  "})
	assert.ErrorIs(t, err, usecase.ErrContentNeeded)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostUsecase_Get_OwnershipEnforced(t *testing.T) {
	mockRepo := new(MockPostRepository)
	owner := bson.NewObjectID()
	other := bson.NewObjectID()
	postID := bson.NewObjectID()

	mockRepo.On("GetByID", mock.Anything, postID.Hex()).
		Return(&model.Post{ID: postID, User: owner}, nil).
		Twice()

	uc := usecase.NewPostUsecase(mockRepo)

	post, err := uc.Get(context.Background(), owner.Hex(), postID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, postID, post.ID)

	_, err = uc.Get(context.Background(), other.Hex(), postID.Hex())
	assert.ErrorIs(t, err, usecase.ErrNotPostOwner)
}

func TestPostUsecase_Get_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	postID := bson.NewObjectID().Hex()
	mockRepo.On("GetByID", mock.Anything, postID).Return(nil, nil).Once()

	uc := usecase.NewPostUsecase(mockRepo)

	_, err := uc.Get(context.Background(), bson.NewObjectID().Hex(), postID)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

func TestPostUsecase_Update_PartialFields(t *testing.T) {
	mockRepo := new(MockPostRepository)
	owner := bson.NewObjectID()
	postID := bson.NewObjectID()
	existing := &model.Post{
		ID:        postID,
		User:      owner,
		Content:   "old content",
		Platforms: []string{"twitter"},
		Status:    model.PostStatusPending,
	}

	mockRepo.On("GetByID", mock.Anything, postID.Hex()).Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, existing).Return(nil).Once()

	uc := usecase.NewPostUsecase(mockRepo)

	post, err := uc.Update(context.Background(), owner.Hex(), postID.Hex(), model.ReqUpdatePost{
		Content: "new content",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new content", post.Content)
	// Fields not in the request are untouched.
	assert.Equal(t, []string{"twitter"}, post.Platforms)
	assert.Equal(t, model.PostStatusPending, post.Status)
}

func TestPostUsecase_Delete_NotOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	owner := bson.NewObjectID()
	postID := bson.NewObjectID()

	mockRepo.On("GetByID", mock.Anything, postID.Hex()).
		Return(&model.Post{ID: postID, User: owner}, nil).
		Once()

	uc := usecase.NewPostUsecase(mockRepo)

	err := uc.Delete(context.Background(), bson.NewObjectID().Hex(), postID.Hex())
	assert.ErrorIs(t, err, usecase.ErrNotPostOwner)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
