package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	utilKit "github.com/superj80820/videotube/kit/util"
)

// authRepo signs and verifies both token classes with HS256. The classes use
// distinct secrets, so an access token never verifies as a refresh token.
// No state is persisted here; revocation lives on the account record.
type authRepo struct {
	accessTokenSecret  []byte
	refreshTokenSecret []byte

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func CreateAuthRepo(accessTokenSecret, refreshTokenSecret string, accessTokenDuration, refreshTokenDuration time.Duration) (domain.AuthRepo, error) {
	if accessTokenSecret == "" || refreshTokenSecret == "" {
		return nil, errors.New("token secrets are required")
	}
	if accessTokenSecret == refreshTokenSecret {
		return nil, errors.New("token classes need distinct secrets")
	}
	return &authRepo{
		accessTokenSecret:    []byte(accessTokenSecret),
		refreshTokenSecret:   []byte(refreshTokenSecret),
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}, nil
}

func (a *authRepo) GenerateAccessToken(userID int64) (string, error) {
	return a.generateToken(userID, a.accessTokenSecret, a.accessTokenDuration)
}

func (a *authRepo) GenerateRefreshToken(userID int64) (string, error) {
	return a.generateToken(userID, a.refreshTokenSecret, a.refreshTokenDuration)
}

func (a *authRepo) generateToken(userID int64, secret []byte, duration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
		// iat only has second resolution, the jti keeps two tokens minted
		// back-to-back from colliding
		"jti": strconv.FormatInt(utilKit.GetSnowflakeIDInt64(), 10),
	})
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "signed token failed")
	}
	return signedToken, nil
}

func (a *authRepo) VerifyToken(token string, accountTokenEnum domain.AccountTokenEnum) (int64, error) {
	var secret []byte
	switch accountTokenEnum {
	case domain.ACCESS_TOKEN:
		secret = a.accessTokenSecret
	case domain.REFRESH_TOKEN:
		secret = a.refreshTokenSecret
	default:
		return 0, errors.New("unknown token enum")
	}

	jwtToken, err := a.parseAndValidToken(token, secret)
	if err != nil {
		return 0, errors.Wrap(err, "parse and valid token failed")
	}

	mapClaims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.Wrap(domain.ErrInvalidData, "get claims failed")
	}
	sub, ok := mapClaims["sub"]
	if !ok {
		return 0, errors.Wrap(domain.ErrInvalidData, "get sub field failed")
	}
	subString, ok := sub.(string)
	if !ok {
		return 0, errors.Wrap(domain.ErrInvalidData, "get unexpected sub type")
	}
	userID, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidData, "parse sub failed")
	}

	return userID, nil
}

func (a *authRepo) parseAndValidToken(tokenString string, secret []byte) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(fmt.Sprintf("unexpected signing %s", token.Header["alg"]))
		}
		return secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errors.Wrap(domain.ErrExpired, fmt.Sprintf("%+v", err))
	} else if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidData, fmt.Sprintf("%+v", err))
	}
	return token, nil
}
