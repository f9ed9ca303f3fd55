package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
)

var (
	ErrPostNotFound  = errors.New("Post not found")
	ErrNotPostOwner  = errors.New("You do not have access to this post")
	ErrContentNeeded = errors.New("Content is required and must be a non-empty string")
)

type IPostUsecase interface {
	Create(ctx context.Context, userID string, req model.ReqCreatePost) (*model.Post, error)
	Get(ctx context.Context, userID, postID string) (*model.Post, error)
	List(ctx context.Context, userID string) ([]*model.Post, error)
	Update(ctx context.Context, userID, postID string, req model.ReqUpdatePost) (*model.Post, error)
	Delete(ctx context.Context, userID, postID string) error
}

type postUsecase struct {
	postRepo repository.IPost
}

func NewPostUsecase(postRepo repository.IPost) IPostUsecase {
	return &postUsecase{postRepo: postRepo}
}

func (u *postUsecase) Create(ctx context.Context, userID string, req model.ReqCreatePost) (*model.Post, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentNeeded
	}
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	return u.postRepo.Create(ctx, &model.Post{
		Content:      req.Content,
		Platforms:    req.Platforms,
		User:         oid,
		ScheduledFor: req.ScheduledFor,
		Status:       model.PostStatusPending,
	})
}

func (u *postUsecase) Get(ctx context.Context, userID, postID string) (*model.Post, error) {
	return u.owned(ctx, userID, postID)
}

func (u *postUsecase) List(ctx context.Context, userID string) ([]*model.Post, error) {
	return u.postRepo.ListByUser(ctx, userID)
}

func (u *postUsecase) Update(ctx context.Context, userID, postID string, req model.ReqUpdatePost) (*model.Post, error) {
	post, err := u.owned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Platforms != nil {
		post.Platforms = req.Platforms
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if err := u.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *postUsecase) Delete(ctx context.Context, userID, postID string) error {
	if _, err := u.owned(ctx, userID, postID); err != nil {
		return err
	}
	return u.postRepo.Delete(ctx, postID, userID)
}

func (u *postUsecase) owned(ctx context.Context, userID, postID string) (*model.Post, error) {
	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.User.Hex() != userID {
		return nil, ErrNotPostOwner
	}
	return post, nil
}
