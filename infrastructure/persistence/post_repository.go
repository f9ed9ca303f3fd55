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

type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) repository.IPost {
	return &PostRepository{collection: db.Collection(collectionPosts)}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := utils.GetCurrentTime()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = model.PostStatusPending
	}
	res, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while inserting post")
		return nil, err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		post.ID = oid
	}
	return post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var post model.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*model.Post, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cursor.Close(ctx); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Error("Error while closing cursor")
		}
	}()

	posts := []*model.Post{}
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding post")
			continue
		}
		posts = append(posts, &post)
	}
	return posts, cursor.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = utils.GetCurrentTime()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string, userID string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "user": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
