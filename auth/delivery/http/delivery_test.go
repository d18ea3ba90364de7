package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	httpKit "github.com/superj80820/videotube/kit/http"
	traceKit "github.com/superj80820/videotube/kit/trace"
)

type stubAuthUseCase struct {
	account      *domain.Account
	refreshToken string
}

func (s *stubAuthUseCase) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	if password != "Watchable1!pass" {
		return nil, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid)
	}
	return s.account, nil
}

func (s *stubAuthUseCase) Logout(ctx context.Context, userID int64) error { return nil }

func (s *stubAuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken != s.refreshToken {
		return "", "", code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Revoke)
	}
	return "rotated-access", "rotated-refresh", nil
}

func (s *stubAuthUseCase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return nil
}

func (s *stubAuthUseCase) Verify(ctx context.Context, accessToken string) (int64, error) {
	return 0, errors.New("not used")
}

func createLoginServer(t *testing.T) *httptest.Server {
	stub := &stubAuthUseCase{
		account: &domain.Account{
			ID:           7,
			Username:     "creator",
			Email:        "creator@example.com",
			AccessToken:  "signed-access",
			RefreshToken: "signed-refresh",
		},
	}
	server := httptransport.NewServer(
		MakeAuthLoginEndpoint(stub),
		DecodeAuthLoginRequest,
		EncodeAuthLoginResponse,
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(traceKit.CreateNoOpTracer())),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	)
	return httptest.NewServer(server)
}

func TestLoginDeliverySetsEnvelopeAndCookies(t *testing.T) {
	testServer := createLoginServer(t)
	defer testServer.Close()

	res, err := http.Post(testServer.URL, "application/json",
		strings.NewReader(`{"email":"creator@example.com","password":"Watchable1!pass"}`))
	assert.Nil(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var envelope struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Success    bool   `json:"success"`
		Data       struct {
			Account      *domain.Account `json:"account"`
			AccessToken  string          `json:"access_token"`
			RefreshToken string          `json:"refresh_token"`
		} `json:"data"`
	}
	assert.Nil(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.Equal(t, http.StatusOK, envelope.StatusCode)
	assert.True(t, envelope.Success)
	assert.Equal(t, "logged in successfully", envelope.Message)
	assert.Equal(t, "creator", envelope.Data.Account.Username)
	assert.Equal(t, "signed-access", envelope.Data.AccessToken)
	assert.Equal(t, "signed-refresh", envelope.Data.RefreshToken)
	// the sanitized account payload never carries tokens of its own
	assert.Empty(t, envelope.Data.Account.AccessToken)

	cookies := map[string]*http.Cookie{}
	for _, cookie := range res.Cookies() {
		cookies[cookie.Name] = cookie
	}
	for _, name := range []string{httpKit.AccessTokenCookieName, httpKit.RefreshTokenCookieName} {
		cookie, ok := cookies[name]
		assert.True(t, ok, name)
		assert.True(t, cookie.HttpOnly, name)
		assert.True(t, cookie.Secure, name)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite, name)
	}
	assert.Equal(t, "signed-access", cookies[httpKit.AccessTokenCookieName].Value)
	assert.Equal(t, "signed-refresh", cookies[httpKit.RefreshTokenCookieName].Value)
}

func TestLoginDeliveryFailureEnvelope(t *testing.T) {
	testServer := createLoginServer(t)
	defer testServer.Close()

	res, err := http.Post(testServer.URL, "application/json",
		strings.NewReader(`{"email":"creator@example.com","password":"wrong"}`))
	assert.Nil(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var envelope struct {
		StatusCode int         `json:"statusCode"`
		Data       interface{} `json:"data"`
		Message    string      `json:"message"`
		Success    bool        `json:"success"`
		Errors     []string    `json:"errors"`
	}
	assert.Nil(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.Equal(t, http.StatusUnauthorized, envelope.StatusCode)
	assert.Nil(t, envelope.Data)
	assert.False(t, envelope.Success)
	assert.Equal(t, []string{"password invalid"}, envelope.Errors)
	assert.Empty(t, res.Cookies())
}

func TestRefreshTokenDeliveryReadsCookie(t *testing.T) {
	stub := &stubAuthUseCase{refreshToken: "stored-refresh"}
	server := httptransport.NewServer(
		MakeRefreshTokenEndpoint(stub),
		DecodeRefreshTokenRequest,
		EncodeRefreshTokenResponse,
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(traceKit.CreateNoOpTracer())),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	)
	testServer := httptest.NewServer(server)
	defer testServer.Close()

	req, err := http.NewRequest(http.MethodPost, testServer.URL, strings.NewReader(`{}`))
	assert.Nil(t, err)
	req.AddCookie(&http.Cookie{Name: httpKit.RefreshTokenCookieName, Value: "stored-refresh"})

	res, err := http.DefaultClient.Do(req)
	assert.Nil(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cookies := map[string]string{}
	for _, cookie := range res.Cookies() {
		cookies[cookie.Name] = cookie.Value
	}
	assert.Equal(t, "rotated-access", cookies[httpKit.AccessTokenCookieName])
	assert.Equal(t, "rotated-refresh", cookies[httpKit.RefreshTokenCookieName])
}
