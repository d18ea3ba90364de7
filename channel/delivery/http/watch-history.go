package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var (
	DecodeWatchHistoryRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeWatchHistoryResponse = httpTransportKit.EncodeJsonResponse
)

func MakeWatchHistoryEndpoint(svc domain.ChannelUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		watchHistory, err := svc.GetWatchHistory(ctx, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return watchHistory, nil
	}
}
