package repository

import (
	"context"

	"social-publisher/domain/model"
)

// IUserCredentials stores one credentials document per user. Callers are
// responsible for encrypting secret fields before writing; the repository
// persists what it is given.
type IUserCredentials interface {
	GetByUserID(ctx context.Context, userID string) (*model.UserCredentials, error)
	Upsert(ctx context.Context, creds *model.UserCredentials) (*model.UserCredentials, error)
}
