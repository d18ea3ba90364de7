package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// DecodeRefreshTokenRequest takes the refresh token from the http-only
// cookie when present and falls back to the JSON body for non-browser
// callers. An absent token is left for the use case to reject.
func DecodeRefreshTokenRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	if cookie, err := r.Cookie(httpKit.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return refreshTokenRequest{RefreshToken: cookie.Value}, nil
	}
	var req refreshTokenRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	return req, nil
}

func MakeRefreshTokenEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(refreshTokenRequest)
		accessToken, refreshToken, err := svc.RefreshToken(ctx, req.RefreshToken)
		if err != nil {
			return nil, err
		}
		return &refreshTokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}, nil
	}
}

func EncodeRefreshTokenResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(*refreshTokenResponse)
	setTokenCookie(w, httpKit.AccessTokenCookieName, res.AccessToken)
	setTokenCookie(w, httpKit.RefreshTokenCookieName, res.RefreshToken)
	return httpTransportKit.EncodeJsonResponse(ctx, w, response)
}
