package http

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

var (
	EncodeAccountAvatarResponse = httpTransportKit.EncodeJsonResponse
	EncodeAccountCoverResponse  = httpTransportKit.EncodeJsonResponse
)

type accountAssetRequest struct {
	File multipart.File
}

func DecodeAccountAvatarRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return decodeAssetRequest(r, "avatar")
}

func DecodeAccountCoverRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return decodeAssetRequest(r, "cover_image")
}

func decodeAssetRequest(r *http.Request, field string) (interface{}, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	var req accountAssetRequest
	if file, _, err := r.FormFile(field); err == nil {
		req.File = file
	}
	return req, nil
}

func MakeAccountAvatarEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountAssetRequest)
		account, err := svc.UpdateAvatar(ctx, httpKit.GetUserID(ctx), fileOrNil(req.File))
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}

func MakeAccountCoverEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountAssetRequest)
		account, err := svc.UpdateCover(ctx, httpKit.GetUserID(ctx), fileOrNil(req.File))
		if err != nil {
			return nil, err
		}
		return account, nil
	}
}

func fileOrNil(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}
