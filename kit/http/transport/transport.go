package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/superj80820/videotube/kit/code"
)

// Envelope is the uniform success wrapper. Failures are encoded by the
// transport error encoder with the same shape plus an errors list.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// Messager lets a response struct override the default success message.
type Messager interface {
	SuccessMessage() string
}

func DecodeEmptyRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

func DecodeJsonRequest[T any](ctx context.Context, r *http.Request) (interface{}, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return req, nil
}

func EncodeJsonResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	message := "success"
	if messager, ok := response.(Messager); ok {
		message = messager.SuccessMessage()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(Envelope{
		StatusCode: http.StatusOK,
		Data:       response,
		Message:    message,
		Success:    true,
	})
}

func EncodeEmptyResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(Envelope{
		StatusCode: http.StatusOK,
		Data:       nil,
		Message:    "success",
		Success:    true,
	})
}
