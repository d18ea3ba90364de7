package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	utilKit "github.com/superj80820/videotube/kit/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type accountRepo struct {
	accountCollection *mongo.Collection

	uniqueIDGenerate *utilKit.UniqueIDGenerate
}

func CreateAccountRepo(client *mongo.Client) (domain.AccountRepo, error) {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "get unique id generate failed")
	}

	accountCollection := client.Database("videotube").Collection("accounts")

	// username and email are stored lowercased, so the unique indexes give
	// case-insensitive uniqueness.
	_, err = accountCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create indexes failed")
	}

	return &accountRepo{
		accountCollection: accountCollection,
		uniqueIDGenerate:  uniqueIDGenerate,
	}, nil
}

func (a *accountRepo) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	now := time.Now()

	clone := *account
	clone.ID = a.uniqueIDGenerate.Generate().GetInt64()
	clone.Username = strings.ToLower(clone.Username)
	clone.Email = strings.ToLower(clone.Email)
	if clone.WatchHistory == nil {
		clone.WatchHistory = []int64{}
	}
	clone.CreatedAt = now
	clone.UpdatedAt = now

	if _, err := a.accountCollection.InsertOne(ctx, &clone); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(domain.ErrDuplicate, err.Error())
		}
		return nil, errors.Wrap(err, "insert account failed")
	}

	return &clone, nil
}

func (a *accountRepo) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	return a.findOne(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (a *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return a.findOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(email)}})
}

func (a *accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return a.findOne(ctx, bson.D{{Key: "username", Value: strings.ToLower(username)}})
}

func (a *accountRepo) findOne(ctx context.Context, filter bson.D) (*domain.Account, error) {
	var account domain.Account
	if err := a.accountCollection.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(domain.ErrNoData, "account not found")
		}
		return nil, errors.Wrap(err, "find account failed")
	}
	return &account, nil
}

func (a *accountRepo) UpdateRefreshToken(ctx context.Context, userID int64, token string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	result, err := a.accountCollection.UpdateByID(ctx, userID, update)
	if err != nil {
		return errors.Wrap(err, "update refresh token failed")
	}
	if result.MatchedCount == 0 {
		return errors.Wrap(domain.ErrNoData, "account not found")
	}
	return nil
}

// RotateRefreshToken is a single conditional update keyed on the previously
// read token value, so two concurrent rotations against the same account
// cannot both succeed.
func (a *accountRepo) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error {
	filter := bson.D{
		{Key: "_id", Value: userID},
		{Key: "refresh_token", Value: oldToken},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: newToken},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	result, err := a.accountCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "rotate refresh token failed")
	}
	if result.MatchedCount == 0 {
		return errors.Wrap(domain.ErrNoData, "stored refresh token differs")
	}
	return nil
}

func (a *accountRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "updated_at", Value: time.Now()},
		}},
	}
	result, err := a.accountCollection.UpdateByID(ctx, userID, update)
	if err != nil {
		return errors.Wrap(err, "update password failed")
	}
	if result.MatchedCount == 0 {
		return errors.Wrap(domain.ErrNoData, "account not found")
	}
	return nil
}

func (a *accountRepo) UpdateFields(ctx context.Context, userID int64, set bson.D) (*domain.Account, error) {
	update := bson.D{
		{Key: "$set", Value: append(set, bson.E{Key: "updated_at", Value: time.Now()})},
	}
	returnAfter := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account domain.Account
	err := a.accountCollection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: userID}}, update, returnAfter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(domain.ErrNoData, "account not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(domain.ErrDuplicate, err.Error())
		}
		return nil, errors.Wrap(err, "update account fields failed")
	}
	return &account, nil
}

func (a *accountRepo) AppendWatchHistory(ctx context.Context, userID, videoID int64) error {
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "watch_history", Value: videoID}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
	}
	result, err := a.accountCollection.UpdateByID(ctx, userID, update)
	if err != nil {
		return errors.Wrap(err, "append watch history failed")
	}
	if result.MatchedCount == 0 {
		return errors.Wrap(domain.ErrNoData, "account not found")
	}
	return nil
}
