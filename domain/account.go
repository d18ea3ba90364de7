package domain

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type Account struct {
	ID       int64  `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	FullName string `bson:"full_name" json:"full_name"`
	Password string `bson:"password" json:"-"`

	Avatar     string `bson:"avatar" json:"avatar"`
	CoverImage string `bson:"cover_image,omitempty" json:"cover_image,omitempty"`

	// RefreshToken holds the single live refresh token for the account.
	// Empty means no valid session. Last login or refresh wins.
	RefreshToken string `bson:"refresh_token,omitempty" json:"-"`

	WatchHistory []int64 `bson:"watch_history" json:"watch_history,omitempty"`

	AccessToken string `bson:"-" json:"access_token,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// Sanitize strips credential fields before the account leaves the service.
func (a *Account) Sanitize() *Account {
	clone := *a
	clone.Password = ""
	clone.RefreshToken = ""
	clone.AccessToken = ""
	return &clone
}

type AccountRepo interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	Get(ctx context.Context, userID int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token string) error
	RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateFields(ctx context.Context, userID int64, set bson.D) (*Account, error)
	AppendWatchHistory(ctx context.Context, userID, videoID int64) error
}

type RegisterParams struct {
	Username string
	Email    string
	FullName string
	Password string

	Avatar     io.Reader
	CoverImage io.Reader
}

type AccountUseCase interface {
	Register(ctx context.Context, params RegisterParams) (*Account, error)
	Get(ctx context.Context, userID int64) (*Account, error)
	UpdateProfile(ctx context.Context, userID int64, fullName, username string) (*Account, error)
	UpdateAvatar(ctx context.Context, userID int64, file io.Reader) (*Account, error)
	UpdateCover(ctx context.Context, userID int64, file io.Reader) (*Account, error)
}
