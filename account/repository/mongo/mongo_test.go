package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/superj80820/videotube/domain"
	testingKit "github.com/superj80820/videotube/kit/testing"
	mongoMemoryTesting "github.com/superj80820/videotube/kit/testing/mongo/memory"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountRepoSuite struct {
	suite.Suite

	mongoDB     testingKit.MongoDBContainer
	mongoClient *mongo.Client
	accountRepo domain.AccountRepo
}

func TestAccountRepoSuite(t *testing.T) {
	suite.Run(t, new(accountRepoSuite))
}

func (suite *accountRepoSuite) SetupSuite() {
	ctx := context.Background()

	mongoDB, err := mongoMemoryTesting.CreateMongoDB()
	suite.Require().Nil(err)
	suite.mongoDB = mongoDB

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoDB.GetURI()))
	suite.Require().Nil(err)
	suite.mongoClient = mongoClient

	accountRepo, err := CreateAccountRepo(mongoClient)
	suite.Require().Nil(err)
	suite.accountRepo = accountRepo
}

func (suite *accountRepoSuite) TearDownSuite() {
	ctx := context.Background()
	suite.Require().Nil(suite.mongoClient.Disconnect(ctx))
	suite.Require().Nil(suite.mongoDB.Terminate(ctx))
}

func (suite *accountRepoSuite) SetupTest() {
	_, err := suite.mongoClient.Database("videotube").Collection("accounts").DeleteMany(context.Background(), bson.D{})
	suite.Require().Nil(err)
}

func (suite *accountRepoSuite) createAccount(username, email string) *domain.Account {
	account, err := suite.accountRepo.Create(context.Background(), &domain.Account{
		Username: username,
		Email:    email,
		FullName: "Test Account",
		Password: "bcrypt-hash",
		Avatar:   "https://assets.test/avatar",
	})
	suite.Require().Nil(err)
	return account
}

func (suite *accountRepoSuite) TestCreateAndGet() {
	ctx := context.Background()
	account := suite.createAccount("Creator", "Creator@Example.com")

	suite.Equal("creator", account.Username)
	suite.Equal("creator@example.com", account.Email)
	suite.NotZero(account.ID)
	suite.NotNil(account.WatchHistory)
	suite.Empty(account.WatchHistory)

	byID, err := suite.accountRepo.Get(ctx, account.ID)
	suite.Nil(err)
	suite.Equal(account.ID, byID.ID)

	byEmail, err := suite.accountRepo.GetByEmail(ctx, "CREATOR@example.com")
	suite.Nil(err)
	suite.Equal(account.ID, byEmail.ID)

	byUsername, err := suite.accountRepo.GetByUsername(ctx, "CREATOR")
	suite.Nil(err)
	suite.Equal(account.ID, byUsername.ID)

	_, err = suite.accountRepo.Get(ctx, account.ID+1)
	suite.ErrorIs(err, domain.ErrNoData)
}

func (suite *accountRepoSuite) TestCreateDuplicate() {
	ctx := context.Background()
	suite.createAccount("creator", "creator@example.com")

	_, err := suite.accountRepo.Create(ctx, &domain.Account{
		Username: "CREATOR",
		Email:    "other@example.com",
		Password: "bcrypt-hash",
	})
	suite.ErrorIs(err, domain.ErrDuplicate)

	_, err = suite.accountRepo.Create(ctx, &domain.Account{
		Username: "other",
		Email:    "Creator@Example.COM",
		Password: "bcrypt-hash",
	})
	suite.ErrorIs(err, domain.ErrDuplicate)
}

func (suite *accountRepoSuite) TestRotateRefreshToken() {
	ctx := context.Background()
	account := suite.createAccount("creator", "creator@example.com")

	suite.Nil(suite.accountRepo.UpdateRefreshToken(ctx, account.ID, "token-1"))

	// the conditional update succeeds once and only once for a given value
	suite.Nil(suite.accountRepo.RotateRefreshToken(ctx, account.ID, "token-1", "token-2"))
	suite.ErrorIs(suite.accountRepo.RotateRefreshToken(ctx, account.ID, "token-1", "token-3"), domain.ErrNoData)

	stored, err := suite.accountRepo.Get(ctx, account.ID)
	suite.Nil(err)
	suite.Equal("token-2", stored.RefreshToken)

	// clearing the token revokes any pending rotation
	suite.Nil(suite.accountRepo.UpdateRefreshToken(ctx, account.ID, ""))
	suite.ErrorIs(suite.accountRepo.RotateRefreshToken(ctx, account.ID, "token-2", "token-4"), domain.ErrNoData)
}

func (suite *accountRepoSuite) TestUpdatePassword() {
	ctx := context.Background()
	account := suite.createAccount("creator", "creator@example.com")

	suite.Nil(suite.accountRepo.UpdatePassword(ctx, account.ID, "new-bcrypt-hash"))

	stored, err := suite.accountRepo.Get(ctx, account.ID)
	suite.Nil(err)
	suite.Equal("new-bcrypt-hash", stored.Password)

	suite.ErrorIs(suite.accountRepo.UpdatePassword(ctx, account.ID+1, "hash"), domain.ErrNoData)
}

func (suite *accountRepoSuite) TestUpdateFields() {
	ctx := context.Background()
	account := suite.createAccount("creator", "creator@example.com")

	updated, err := suite.accountRepo.UpdateFields(ctx, account.ID, bson.D{
		{Key: "full_name", Value: "Renamed"},
		{Key: "avatar", Value: "https://assets.test/avatar-2"},
	})
	suite.Nil(err)
	suite.Equal("Renamed", updated.FullName)
	suite.Equal("https://assets.test/avatar-2", updated.Avatar)
	suite.Equal("creator", updated.Username)

	other := suite.createAccount("rival", "rival@example.com")
	_, err = suite.accountRepo.UpdateFields(ctx, other.ID, bson.D{
		{Key: "username", Value: "creator"},
	})
	suite.ErrorIs(err, domain.ErrDuplicate)
}

func (suite *accountRepoSuite) TestAppendWatchHistory() {
	ctx := context.Background()
	account := suite.createAccount("creator", "creator@example.com")

	suite.Nil(suite.accountRepo.AppendWatchHistory(ctx, account.ID, 3))
	suite.Nil(suite.accountRepo.AppendWatchHistory(ctx, account.ID, 1))
	suite.Nil(suite.accountRepo.AppendWatchHistory(ctx, account.ID, 2))

	stored, err := suite.accountRepo.Get(ctx, account.ID)
	suite.Nil(err)
	suite.Equal([]int64{3, 1, 2}, stored.WatchHistory)
}
