package usecase

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	loggerKit "github.com/superj80820/videotube/kit/logger"
	utilKit "github.com/superj80820/videotube/kit/util"
)

type authUseCase struct {
	authRepo    domain.AuthRepo
	accountRepo domain.AccountRepo
	logger      *loggerKit.Logger
}

func CreateAuthUseCase(authRepo domain.AuthRepo, accountRepo domain.AccountRepo, logger *loggerKit.Logger) (domain.AuthUseCase, error) {
	if logger == nil {
		return nil, errors.New("create use case failed")
	}
	return &authUseCase{
		authRepo:    authRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}, nil
}

func (a *authUseCase) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := a.accountRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.Password), []byte(password)); err != nil {
		return nil, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid).AddErrorMetaData(err)
	}

	signedAccessToken, err := a.authRepo.GenerateAccessToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "signed access token failed")
	}
	signedRefreshToken, err := a.authRepo.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "signed refresh token failed")
	}

	// single active session per account: a new login overwrites whatever
	// refresh token was stored before
	if err := a.accountRepo.UpdateRefreshToken(ctx, account.ID, signedRefreshToken); err != nil {
		return nil, errors.Wrap(err, "save refresh token failed")
	}

	loggedIn := account.Sanitize()
	loggedIn.AccessToken = signedAccessToken
	loggedIn.RefreshToken = signedRefreshToken

	return loggedIn, nil
}

func (a *authUseCase) Logout(ctx context.Context, userID int64) error {
	err := a.accountRepo.UpdateRefreshToken(ctx, userID, "")
	if errors.Is(err, domain.ErrNoData) {
		return nil
	} else if err != nil {
		return errors.Wrap(err, "clear refresh token failed")
	}
	return nil
}

func (a *authUseCase) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	if refreshTokenString == "" {
		return "", "", code.CreateErrorCode(http.StatusUnauthorized)
	}

	userID, err := a.authRepo.VerifyToken(refreshTokenString, domain.REFRESH_TOKEN)
	if errors.Is(err, domain.ErrExpired) {
		return "", "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Expired).AddErrorMetaData(err)
	} else if errors.Is(err, domain.ErrInvalidData) {
		return "", "", code.CreateErrorCode(http.StatusUnauthorized).AddErrorMetaData(err)
	} else if err != nil {
		return "", "", errors.Wrap(err, "verify token failed")
	}

	signedAccessToken, err := a.authRepo.GenerateAccessToken(userID)
	if err != nil {
		return "", "", errors.Wrap(err, "signed access token failed")
	}
	signedRefreshToken, err := a.authRepo.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", errors.Wrap(err, "signed refresh token failed")
	}

	// rotation is conditional on the incoming token still being the stored
	// one, so a rotated or logged-out token fails here even before expiry
	err = a.accountRepo.RotateRefreshToken(ctx, userID, refreshTokenString, signedRefreshToken)
	if errors.Is(err, domain.ErrNoData) {
		return "", "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Revoke).AddErrorMetaData(err)
	} else if err != nil {
		return "", "", errors.Wrap(err, "rotate refresh token failed")
	}

	return signedAccessToken, signedRefreshToken, nil
}

func (a *authUseCase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	account, err := a.accountRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNoData) {
		return code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return errors.Wrap(err, "get account failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.Password), []byte(oldPassword)); err != nil {
		return code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid).AddErrorMetaData(err)
	}

	if utilKit.CompareBcrypt([]byte(account.Password), []byte(newPassword)) == nil {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.SamePassword)
	}
	if !utilKit.IsStrongPassword(newPassword) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordWeak)
	}

	passwordHash, err := utilKit.GetBcrypt(newPassword)
	if err != nil {
		return errors.Wrap(err, "get bcrypt failed")
	}

	// live sessions stay valid after a password change; only the credential
	// itself rotates
	if err := a.accountRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return errors.Wrap(err, "update password failed")
	}
	return nil
}

func (a *authUseCase) Verify(ctx context.Context, accessToken string) (int64, error) {
	userID, err := a.authRepo.VerifyToken(accessToken, domain.ACCESS_TOKEN)
	if errors.Is(err, domain.ErrExpired) {
		return 0, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Expired).AddErrorMetaData(err)
	} else if errors.Is(err, domain.ErrInvalidData) {
		return 0, code.CreateErrorCode(http.StatusUnauthorized).AddErrorMetaData(err)
	} else if err != nil {
		return 0, errors.Wrap(err, "verify token failed")
	}
	return userID, nil
}
