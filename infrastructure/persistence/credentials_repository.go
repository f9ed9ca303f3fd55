package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/logger"
	"social-publisher/infrastructure/utils"
)

type CredentialsRepository struct {
	collection *mongo.Collection
}

func NewCredentialsRepository(db *mongo.Database) repository.IUserCredentials {
	return &CredentialsRepository{collection: db.Collection(collectionCredentials)}
}

func (r *CredentialsRepository) GetByUserID(ctx context.Context, userID string) (*model.UserCredentials, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var creds model.UserCredentials
	err = r.collection.FindOne(ctx, bson.M{"userId": oid}).Decode(&creds)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &creds, nil
}

func (r *CredentialsRepository) Upsert(ctx context.Context, creds *model.UserCredentials) (*model.UserCredentials, error) {
	now := utils.GetCurrentTime()
	if creds.CreatedAt.IsZero() {
		creds.CreatedAt = now
	}
	creds.UpdatedAt = now
	opts := options.Replace().SetUpsert(true)
	res, err := r.collection.ReplaceOne(ctx, bson.M{"userId": creds.UserID}, creds, opts)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while upserting credentials")
		return nil, err
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		creds.ID = oid
	}
	return creds, nil
}
