package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var DecodeAuthLogoutRequest = httpTransportKit.DecodeEmptyRequest

func MakeAuthLogoutEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		if err := svc.Logout(ctx, httpKit.GetUserID(ctx)); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func EncodeAuthLogoutResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	setTokenCookie(w, httpKit.AccessTokenCookieName, "")
	setTokenCookie(w, httpKit.RefreshTokenCookieName, "")
	return httpTransportKit.EncodeEmptyResponse(ctx, w, response)
}
