package domain

import (
	"context"
	"time"
)

// Subscription is a directed edge from a subscriber account to a channel
// account. The pair carries no uniqueness constraint, so subscriber counts
// reflect edge cardinality, not distinct pairs.
type Subscription struct {
	ID           int64     `bson:"_id" json:"id"`
	SubscriberID int64     `bson:"subscriber_id" json:"subscriber_id"`
	ChannelID    int64     `bson:"channel_id" json:"channel_id"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type ChannelProfile struct {
	ID         int64  `bson:"_id" json:"id"`
	Username   string `bson:"username" json:"username"`
	Email      string `bson:"email" json:"email"`
	FullName   string `bson:"full_name" json:"full_name"`
	Avatar     string `bson:"avatar" json:"avatar"`
	CoverImage string `bson:"cover_image,omitempty" json:"cover_image,omitempty"`

	SubscribersCount          int  `bson:"subscribers_count" json:"subscribers_count"`
	ChannelsSubscribedToCount int  `bson:"channels_subscribed_to_count" json:"channels_subscribed_to_count"`
	IsSubscribed              bool `bson:"is_subscribed" json:"is_subscribed"`
}

// VideoOwner is the owner join collapsed to a single public-safe object.
type VideoOwner struct {
	FullName string `bson:"full_name" json:"full_name"`
	Username string `bson:"username" json:"username"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

type WatchHistoryVideo struct {
	ID        int64       `bson:"_id" json:"id"`
	Title     string      `bson:"title" json:"title"`
	Thumbnail string      `bson:"thumbnail" json:"thumbnail"`
	Duration  float64     `bson:"duration" json:"duration"`
	Views     int64       `bson:"views" json:"views"`
	Owner     *VideoOwner `bson:"owner" json:"owner"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}

type ChannelRepo interface {
	GetChannelProfile(ctx context.Context, username string, viewerID int64) (*ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID int64) ([]*WatchHistoryVideo, error)
}

type ChannelUseCase interface {
	GetChannelProfile(ctx context.Context, username string, viewerID int64) (*ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID int64) ([]*WatchHistoryVideo, error)
}
