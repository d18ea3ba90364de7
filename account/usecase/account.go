package usecase

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	loggerKit "github.com/superj80820/videotube/kit/logger"
	utilKit "github.com/superj80820/videotube/kit/util"
	"go.mongodb.org/mongo-driver/bson"
)

type accountUseCase struct {
	accountRepo domain.AccountRepo
	storageRepo domain.StorageRepo
	logger      *loggerKit.Logger

	uniqueIDGenerate *utilKit.UniqueIDGenerate
}

func CreateAccountUseCase(accountRepo domain.AccountRepo, storageRepo domain.StorageRepo, logger *loggerKit.Logger) (domain.AccountUseCase, error) {
	if logger == nil {
		return nil, errors.New("create use case failed")
	}
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "get unique id generate failed")
	}
	return &accountUseCase{
		accountRepo:      accountRepo,
		storageRepo:      storageRepo,
		logger:           logger,
		uniqueIDGenerate: uniqueIDGenerate,
	}, nil
}

func (a *accountUseCase) Register(ctx context.Context, params domain.RegisterParams) (*domain.Account, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)
	fullName := strings.TrimSpace(params.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(params.Password) == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody)
	}
	if params.Avatar == nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody)
	}

	avatarURL, err := a.uploadAsset(ctx, params.Avatar, "avatars")
	if err != nil {
		return nil, err
	}
	var coverImageURL string
	if params.CoverImage != nil {
		coverImageURL, err = a.uploadAsset(ctx, params.CoverImage, "covers")
		if err != nil {
			return nil, err
		}
	}

	passwordHash, err := utilKit.GetBcrypt(params.Password)
	if err != nil {
		return nil, errors.Wrap(err, "get bcrypt failed")
	}

	account, err := a.accountRepo.Create(ctx, &domain.Account{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   passwordHash,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.Duplicate, "username or email").AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "create account failed")
	}

	return account.Sanitize(), nil
}

func (a *accountUseCase) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := a.accountRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}
	return account.Sanitize(), nil
}

func (a *accountUseCase) UpdateProfile(ctx context.Context, userID int64, fullName, username string) (*domain.Account, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.ToLower(strings.TrimSpace(username))

	if fullName == "" && username == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody)
	}

	account, err := a.accountRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}

	// a request that changes nothing is rejected rather than silently
	// accepted
	fullNameChanged := fullName != "" && fullName != account.FullName
	usernameChanged := username != "" && username != account.Username
	if !fullNameChanged && !usernameChanged {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.NoChange).AddErrorMetaData(domain.ErrNoChange)
	}

	if usernameChanged {
		existing, err := a.accountRepo.GetByUsername(ctx, username)
		if err != nil && !errors.Is(err, domain.ErrNoData) {
			return nil, errors.Wrap(err, "get account by username failed")
		}
		if existing != nil && existing.ID != userID {
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.Duplicate, "username")
		}
	}

	var set bson.D
	if fullNameChanged {
		set = append(set, bson.E{Key: "full_name", Value: fullName})
	}
	if usernameChanged {
		set = append(set, bson.E{Key: "username", Value: username})
	}

	updated, err := a.accountRepo.UpdateFields(ctx, userID, set)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.Duplicate, "username").AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "update account failed")
	}
	return updated.Sanitize(), nil
}

func (a *accountUseCase) UpdateAvatar(ctx context.Context, userID int64, file io.Reader) (*domain.Account, error) {
	return a.updateAsset(ctx, userID, file, "avatar", "avatars")
}

func (a *accountUseCase) UpdateCover(ctx context.Context, userID int64, file io.Reader) (*domain.Account, error) {
	return a.updateAsset(ctx, userID, file, "cover_image", "covers")
}

func (a *accountUseCase) updateAsset(ctx context.Context, userID int64, file io.Reader, field, keyPrefix string) (*domain.Account, error) {
	if file == nil {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	}

	account, err := a.accountRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}

	oldURL := account.Avatar
	if field == "cover_image" {
		oldURL = account.CoverImage
	}

	newURL, err := a.uploadAsset(ctx, file, keyPrefix)
	if err != nil {
		return nil, err
	}

	updated, err := a.accountRepo.UpdateFields(ctx, userID, bson.D{{Key: field, Value: newURL}})
	if err != nil {
		return nil, errors.Wrap(err, "update account failed")
	}

	// the metadata write is committed; deleting the replaced asset is a
	// compensation step, and a failure here only leaves an orphaned object
	if oldURL != "" && oldURL != newURL {
		if err := a.storageRepo.Delete(ctx, oldURL); err != nil {
			a.logger.Warn("delete replaced asset failed",
				loggerKit.String("url", oldURL),
				loggerKit.Error(err),
			)
		}
	}

	return updated.Sanitize(), nil
}

func (a *accountUseCase) uploadAsset(ctx context.Context, file io.Reader, keyPrefix string) (string, error) {
	key := keyPrefix + "/" + a.uniqueIDGenerate.Generate().GetBase62()
	url, err := a.storageRepo.Upload(ctx, file, key)
	if err != nil {
		return "", code.CreateErrorCode(http.StatusInternalServerError).AddCode(code.UploadFailed).AddErrorMetaData(err)
	}
	return url, nil
}
