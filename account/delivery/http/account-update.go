package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var (
	DecodeAccountUpdateRequest  = httpTransportKit.DecodeJsonRequest[accountUpdateRequest]
	EncodeAccountUpdateResponse = httpTransportKit.EncodeJsonResponse
)

type accountUpdateRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

func MakeAccountUpdateEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountUpdateRequest)
		account, err := svc.UpdateProfile(ctx, httpKit.GetUserID(ctx), req.FullName, req.Username)
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
