package http

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	httpTransportKit "github.com/superj80820/videotube/kit/http/transport"
)

// maxUploadSize bounds the in-memory part of multipart parsing; larger files
// spill to disk.
const maxUploadSize = 10 << 20

var EncodeAccountRegisterResponse = httpTransportKit.EncodeJsonResponse

type accountRegisterRequest struct {
	Username string
	Email    string
	FullName string
	Password string

	Avatar     multipart.File
	CoverImage multipart.File
}

type accountRegisterResponse struct {
	*domain.Account
}

func (accountRegisterResponse) SuccessMessage() string { return "account registered successfully" }

func DecodeAccountRegisterRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	req := accountRegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Password: r.FormValue("password"),
	}
	if file, _, err := r.FormFile("avatar"); err == nil {
		req.Avatar = file
	}
	if file, _, err := r.FormFile("cover_image"); err == nil {
		req.CoverImage = file
	}
	return req, nil
}

func MakeAccountRegisterEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(accountRegisterRequest)
		params := domain.RegisterParams{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
		}
		if req.Avatar != nil {
			params.Avatar = req.Avatar
		}
		if req.CoverImage != nil {
			params.CoverImage = req.CoverImage
		}
		account, err := svc.Register(ctx, params)
		if err != nil {
			return nil, err
		}
		return accountRegisterResponse{Account: account}, nil
	}
}
