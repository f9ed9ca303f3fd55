package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post lifecycle states.
const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
)

// Per-platform publish outcomes.
const (
	PlatformStatusSuccess = "success"
	PlatformStatusFailed  = "failed"
	PlatformStatusSkipped = "skipped"
)

// Post records one publish attempt. ScheduledFor is carried in the schema
// but no scheduler consumes it.
type Post struct {
	ID             bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	Content        string         `json:"content" bson:"content"`
	Platforms      []string       `json:"platforms" bson:"platforms"`
	User           bson.ObjectID  `json:"user" bson:"user"`
	ScheduledFor   *time.Time     `json:"scheduledFor,omitempty" bson:"scheduledFor,omitempty"`
	Status         string         `json:"status" bson:"status"`
	PlatformStatus PlatformStatus `json:"platformStatus" bson:"platformStatus"`
	PlatformData   PlatformData   `json:"platformData,omitempty" bson:"platformData,omitempty"`
	Error          string         `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type PlatformStatus struct {
	Twitter  string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

type PlatformData struct {
	Twitter  *TwitterPostData  `json:"twitter,omitempty" bson:"twitter,omitempty"`
	LinkedIn *LinkedInPostData `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
}

type TwitterPostData struct {
	TweetID  string    `json:"tweetId" bson:"tweetId"`
	PostedAt time.Time `json:"postedAt" bson:"postedAt"`
}

type LinkedInPostData struct {
	PostID   string    `json:"postId" bson:"postId"`
	PostedAt time.Time `json:"postedAt" bson:"postedAt"`
}

// PlatformResult is what a publisher returns on success: the remote post id
// and when the platform accepted it.
type PlatformResult struct {
	RemoteID string
	PostedAt time.Time
}

type ReqCreatePost struct {
	Content      string     `json:"content"`
	Platforms    []string   `json:"platforms"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type ReqUpdatePost struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Status    string   `json:"status"`
}

type ReqPublish struct {
	Content string `json:"content"`
	PostID  string `json:"postId"`
}
