package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/superj80820/videotube/domain"
	testingKit "github.com/superj80820/videotube/kit/testing"
	mongoMemoryTesting "github.com/superj80820/videotube/kit/testing/mongo/memory"
	utilKit "github.com/superj80820/videotube/kit/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type channelRepoSuite struct {
	suite.Suite

	mongoDB     testingKit.MongoDBContainer
	mongoClient *mongo.Client
	channelRepo domain.ChannelRepo
}

func TestChannelRepoSuite(t *testing.T) {
	suite.Run(t, new(channelRepoSuite))
}

func (suite *channelRepoSuite) SetupSuite() {
	ctx := context.Background()

	mongoDB, err := mongoMemoryTesting.CreateMongoDB()
	suite.Require().Nil(err)
	suite.mongoDB = mongoDB

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoDB.GetURI()))
	suite.Require().Nil(err)
	suite.mongoClient = mongoClient

	suite.channelRepo = CreateChannelRepo(mongoClient)
}

func (suite *channelRepoSuite) TearDownSuite() {
	ctx := context.Background()
	suite.Require().Nil(suite.mongoClient.Disconnect(ctx))
	suite.Require().Nil(suite.mongoDB.Terminate(ctx))
}

func (suite *channelRepoSuite) SetupTest() {
	ctx := context.Background()
	database := suite.mongoClient.Database("videotube")
	for _, collection := range []string{"accounts", "subscriptions", "videos"} {
		_, err := database.Collection(collection).DeleteMany(ctx, bson.D{})
		suite.Require().Nil(err)
	}
}

func (suite *channelRepoSuite) insertAccount(username string, watchHistory []int64) int64 {
	if watchHistory == nil {
		watchHistory = []int64{}
	}
	account := &domain.Account{
		ID:           utilKit.GetSnowflakeIDInt64(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Account " + username,
		Avatar:       "https://assets.test/" + username,
		WatchHistory: watchHistory,
	}
	_, err := suite.mongoClient.Database("videotube").Collection("accounts").InsertOne(context.Background(), account)
	suite.Require().Nil(err)
	return account.ID
}

func (suite *channelRepoSuite) insertSubscription(subscriberID, channelID int64) {
	subscription := &domain.Subscription{
		ID:           utilKit.GetSnowflakeIDInt64(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	_, err := suite.mongoClient.Database("videotube").Collection("subscriptions").InsertOne(context.Background(), subscription)
	suite.Require().Nil(err)
}

func (suite *channelRepoSuite) insertVideo(id, ownerID int64, title string) {
	video := &domain.Video{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Thumbnail: "https://assets.test/thumb/" + title,
		Duration:  123.4,
		Views:     10,
		CreatedAt: time.Now(),
	}
	_, err := suite.mongoClient.Database("videotube").Collection("videos").InsertOne(context.Background(), video)
	suite.Require().Nil(err)
}

func (suite *channelRepoSuite) TestGetChannelProfileCounts() {
	ctx := context.Background()

	channelID := suite.insertAccount("channel", nil)
	viewerID := suite.insertAccount("viewer", nil)
	otherID := suite.insertAccount("other", nil)

	suite.insertSubscription(viewerID, channelID)
	suite.insertSubscription(otherID, channelID)
	suite.insertSubscription(channelID, otherID)

	profile, err := suite.channelRepo.GetChannelProfile(ctx, "Channel", viewerID)
	suite.Nil(err)
	suite.Equal("channel", profile.Username)
	suite.Equal(2, profile.SubscribersCount)
	suite.Equal(1, profile.ChannelsSubscribedToCount)
	suite.True(profile.IsSubscribed)

	// a viewer with no edge to the channel sees the same counts, unsubscribed
	profile, err = suite.channelRepo.GetChannelProfile(ctx, "channel", utilKit.GetSnowflakeIDInt64())
	suite.Nil(err)
	suite.Equal(2, profile.SubscribersCount)
	suite.False(profile.IsSubscribed)
}

func (suite *channelRepoSuite) TestGetChannelProfileWithoutEdges() {
	ctx := context.Background()
	channelID := suite.insertAccount("loner", nil)

	profile, err := suite.channelRepo.GetChannelProfile(ctx, "loner", channelID)
	suite.Nil(err)
	suite.Equal(0, profile.SubscribersCount)
	suite.Equal(0, profile.ChannelsSubscribedToCount)
	suite.False(profile.IsSubscribed)
}

func (suite *channelRepoSuite) TestGetChannelProfileNotFound() {
	_, err := suite.channelRepo.GetChannelProfile(context.Background(), "ghost", 1)
	suite.ErrorIs(err, domain.ErrNoData)
}

func (suite *channelRepoSuite) TestGetWatchHistoryKeepsVisitOrder() {
	ctx := context.Background()

	ownerID := suite.insertAccount("owner", nil)
	suite.insertVideo(101, ownerID, "first-watched")
	suite.insertVideo(102, ownerID, "second-watched")
	suite.insertVideo(103, ownerID, "third-watched")

	// visit order is not id order
	viewerID := suite.insertAccount("viewer", []int64{103, 101, 102})

	watchHistory, err := suite.channelRepo.GetWatchHistory(ctx, viewerID)
	suite.Nil(err)
	suite.Require().Len(watchHistory, 3)
	suite.Equal(int64(103), watchHistory[0].ID)
	suite.Equal(int64(101), watchHistory[1].ID)
	suite.Equal(int64(102), watchHistory[2].ID)
}

func (suite *channelRepoSuite) TestGetWatchHistoryCollapsesOwner() {
	ctx := context.Background()

	ownerID := suite.insertAccount("owner", nil)
	suite.insertVideo(201, ownerID, "watched")
	viewerID := suite.insertAccount("viewer", []int64{201})

	watchHistory, err := suite.channelRepo.GetWatchHistory(ctx, viewerID)
	suite.Nil(err)
	suite.Require().Len(watchHistory, 1)
	suite.Require().NotNil(watchHistory[0].Owner)
	suite.Equal("owner", watchHistory[0].Owner.Username)
	suite.Equal("Account owner", watchHistory[0].Owner.FullName)
	suite.Equal("https://assets.test/owner", watchHistory[0].Owner.Avatar)
	suite.Equal("watched", watchHistory[0].Title)
}

func (suite *channelRepoSuite) TestGetWatchHistoryEmpty() {
	ctx := context.Background()
	viewerID := suite.insertAccount("viewer", nil)

	watchHistory, err := suite.channelRepo.GetWatchHistory(ctx, viewerID)
	suite.Nil(err)
	suite.NotNil(watchHistory)
	suite.Empty(watchHistory)

	// an unknown account also yields an empty list, not an error
	watchHistory, err = suite.channelRepo.GetWatchHistory(ctx, utilKit.GetSnowflakeIDInt64())
	suite.Nil(err)
	suite.Empty(watchHistory)
}

func (suite *channelRepoSuite) TestGetWatchHistorySkipsDeletedVideos() {
	ctx := context.Background()

	ownerID := suite.insertAccount("owner", nil)
	suite.insertVideo(301, ownerID, "survivor")
	// 302 was watched but no longer exists
	viewerID := suite.insertAccount("viewer", []int64{302, 301})

	watchHistory, err := suite.channelRepo.GetWatchHistory(ctx, viewerID)
	suite.Nil(err)
	suite.Require().Len(watchHistory, 1)
	suite.Equal(int64(301), watchHistory[0].ID)
}
