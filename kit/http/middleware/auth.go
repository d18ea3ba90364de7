package middleware

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	httpKit "github.com/superj80820/videotube/kit/http"
)

// CreateAuthMiddleware verifies the access token carried on the request
// context and threads the resolved user id through the context for endpoints.
func CreateAuthMiddleware(authFunc func(ctx context.Context, accessToken string) (userID int64, err error)) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			userID, err := authFunc(ctx, httpKit.GetToken(ctx))
			if err != nil {
				return nil, errors.Wrap(err, "auth failed")
			}
			ctx = httpKit.AddUserID(ctx, userID)
			return e(ctx, request)
		}
	}
}
