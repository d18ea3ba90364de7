package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var EncodeChannelProfileResponse = httpTransportKit.EncodeJsonResponse

type channelProfileRequest struct {
	Username string
}

func DecodeChannelProfileRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return channelProfileRequest{Username: mux.Vars(r)["username"]}, nil
}

func MakeChannelProfileEndpoint(svc domain.ChannelUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(channelProfileRequest)
		profile, err := svc.GetChannelProfile(ctx, req.Username, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return profile, nil
	}
}
