package repository

import (
	"context"
	"time"

	"social-publisher/domain/model"
)

type IUser interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateToken(ctx context.Context, id string, platform model.Platform, token string) (*model.User, error)
	UpdateLinkedInAuth(ctx context.Context, id string, token string, expiry time.Time, personURN string) error
}
