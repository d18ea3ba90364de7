package domain

import "context"

type AccountTokenEnum int

const (
	UNKNOWN_TOKEN AccountTokenEnum = iota
	ACCESS_TOKEN
	REFRESH_TOKEN
)

type AuthRepo interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	VerifyToken(token string, accountTokenEnum AccountTokenEnum) (userID int64, err error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*Account, error)
	Logout(ctx context.Context, userID int64) error
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	Verify(ctx context.Context, accessToken string) (userID int64, err error)
}
