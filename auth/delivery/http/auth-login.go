package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var DecodeAuthLoginRequest = httpTransportKit.DecodeJsonRequest[AuthLoginRequest]

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	Account      *domain.Account `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

func (AuthLoginResponse) SuccessMessage() string { return "logged in successfully" }

func MakeAuthLoginEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AuthLoginRequest)
		account, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		accessToken, refreshToken := account.AccessToken, account.RefreshToken
		return &AuthLoginResponse{
			Account:      account.Sanitize(),
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}, nil
	}
}

// EncodeAuthLoginResponse delivers both tokens as http-only secure cookies on
// top of the body so browser callers never touch them from script.
func EncodeAuthLoginResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(*AuthLoginResponse)
	setTokenCookie(w, httpKit.AccessTokenCookieName, res.AccessToken)
	setTokenCookie(w, httpKit.RefreshTokenCookieName, res.RefreshToken)
	return httpTransportKit.EncodeJsonResponse(ctx, w, response)
}

func setTokenCookie(w http.ResponseWriter, name, value string) {
	maxAge := 0
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
