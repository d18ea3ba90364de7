package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var (
	DecodeChangePasswordRequest  = httpTransportKit.DecodeJsonRequest[changePasswordRequest]
	EncodeChangePasswordResponse = httpTransportKit.EncodeEmptyResponse
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func MakeChangePasswordEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(changePasswordRequest)
		if err := svc.ChangePassword(ctx, httpKit.GetUserID(ctx), req.OldPassword, req.NewPassword); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
