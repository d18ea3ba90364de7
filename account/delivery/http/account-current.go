package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var (
	DecodeAccountCurrentRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeAccountCurrentResponse = httpTransportKit.EncodeJsonResponse
)

func MakeAccountCurrentEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		account, err := svc.Get(ctx, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}
