package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// queryTimeout bounds the aggregation joins so a slow pipeline cannot hold a
// request open indefinitely.
const queryTimeout = 10 * time.Second

type channelRepo struct {
	accountCollection      *mongo.Collection
	subscriptionCollection *mongo.Collection
	videoCollection        *mongo.Collection
}

func CreateChannelRepo(client *mongo.Client) domain.ChannelRepo {
	database := client.Database("videotube")
	return &channelRepo{
		accountCollection:      database.Collection("accounts"),
		subscriptionCollection: database.Collection("subscriptions"),
		videoCollection:        database.Collection("videos"),
	}
}

// GetChannelProfile resolves the channel and its subscription edges in one
// aggregation instead of per-edge lookups. Missing edges produce zero counts,
// not a missing record.
func (c *channelRepo) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "username", Value: strings.ToLower(username)},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel_id"},
			{Key: "as", Value: "subscribers"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "subscriptions"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber_id"},
			{Key: "as", Value: "subscribed_to"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "subscribers_count", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channels_subscribed_to_count", Value: bson.D{{Key: "$size", Value: "$subscribed_to"}}},
			{Key: "is_subscribed", Value: bson.D{
				{Key: "$in", Value: bson.A{viewerID, "$subscribers.subscriber_id"}},
			}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "full_name", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "cover_image", Value: 1},
			{Key: "subscribers_count", Value: 1},
			{Key: "channels_subscribed_to_count", Value: 1},
			{Key: "is_subscribed", Value: 1},
		}}},
	}

	cur, err := c.accountCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate channel profile failed")
	}
	defer cur.Close(ctx)

	var results []*domain.ChannelProfile
	if err := cur.All(ctx, &results); err != nil {
		return nil, errors.Wrap(err, "decode channel profile failed")
	}
	if len(results) == 0 {
		return nil, errors.Wrap(domain.ErrNoData, "channel not found")
	}
	return results[0], nil
}

// GetWatchHistory enriches the stored video id sequence in one aggregation.
// The unwind carries the array index, and the final sort restores the stored
// order, so output order equals visit order rather than lookup order.
func (c *channelRepo) GetWatchHistory(ctx context.Context, userID int64) ([]*domain.WatchHistoryVideo, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: userID},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$watch_history"},
			{Key: "includeArrayIndex", Value: "watch_order"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "videos"},
			{Key: "localField", Value: "watch_history"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$video"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "accounts"},
			{Key: "localField", Value: "video.owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			// the owner join is a one-element list; collapse it to an object
			{Key: "video.owner", Value: bson.D{
				{Key: "$arrayElemAt", Value: bson.A{
					bson.D{{Key: "$map", Value: bson.D{
						{Key: "input", Value: "$owner"},
						{Key: "as", Value: "ownerAccount"},
						{Key: "in", Value: bson.D{
							{Key: "full_name", Value: "$$ownerAccount.full_name"},
							{Key: "username", Value: "$$ownerAccount.username"},
							{Key: "avatar", Value: "$$ownerAccount.avatar"},
						}},
					}}},
					0,
				}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "watch_order", Value: 1},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{
			{Key: "newRoot", Value: "$video"},
		}}},
	}

	cur, err := c.accountCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate watch history failed")
	}
	defer cur.Close(ctx)

	results := []*domain.WatchHistoryVideo{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, errors.Wrap(err, "decode watch history failed")
	}
	return results, nil
}
