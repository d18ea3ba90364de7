package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	accountDeliveryHTTP "github.com/superj80820/videotube/account/delivery/http"
	accountMongoRepo "github.com/superj80820/videotube/account/repository/mongo"
	accountUseCaseLib "github.com/superj80820/videotube/account/usecase"
	authDeliveryHTTP "github.com/superj80820/videotube/auth/delivery/http"
	authJWTRepo "github.com/superj80820/videotube/auth/repository/token/jwt"
	authUseCaseLib "github.com/superj80820/videotube/auth/usecase"
	channelDeliveryHTTP "github.com/superj80820/videotube/channel/delivery/http"
	channelMongoRepo "github.com/superj80820/videotube/channel/repository/mongo"
	channelUseCaseLib "github.com/superj80820/videotube/channel/usecase"
	httpKit "github.com/superj80820/videotube/kit/http"
	httpMiddlewareKit "github.com/superj80820/videotube/kit/http/middleware"
	loggerKit "github.com/superj80820/videotube/kit/logger"
	traceKit "github.com/superj80820/videotube/kit/trace"
	utilKit "github.com/superj80820/videotube/kit/util"
	storageS3Repo "github.com/superj80820/videotube/storage/repository/s3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

const (
	SYSTEM_NAME  = "videotube"
	SERVICE_NAME = "identity"
)

func main() {
	var (
		enableTracer = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env          = utilKit.GetEnvString("ENV", "development")

		httpAddr = utilKit.GetEnvString("HTTP_ADDR", ":9093")
		mongoURI = utilKit.GetEnvString("MONGO_URI", "mongodb://localhost:27017")

		accessTokenSecret  = utilKit.GetRequireEnvString("ACCESS_TOKEN_SECRET")
		refreshTokenSecret = utilKit.GetRequireEnvString("REFRESH_TOKEN_SECRET")
		accessTokenExpire  = utilKit.GetEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)
		refreshTokenExpire = utilKit.GetEnvInt("REFRESH_TOKEN_EXPIRE_HOURS", 7*24)

		s3Bucket = utilKit.GetRequireEnvString("S3_BUCKET")
		s3Region = utilKit.GetEnvString("S3_REGION", "us-east-1")
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger("./go.log", logLevel)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoDB, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := mongoDB.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect mongo failed", loggerKit.Error(err))
		}
	}()

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	accountRepo, err := accountMongoRepo.CreateAccountRepo(mongoDB)
	if err != nil {
		panic(err)
	}
	channelRepo := channelMongoRepo.CreateChannelRepo(mongoDB)
	authRepo, err := authJWTRepo.CreateAuthRepo(
		accessTokenSecret,
		refreshTokenSecret,
		time.Duration(accessTokenExpire)*time.Minute,
		time.Duration(refreshTokenExpire)*time.Hour,
	)
	if err != nil {
		panic(err)
	}
	storageRepo, err := storageS3Repo.CreateS3Repo(context.Background(), s3Bucket, s3Region)
	if err != nil {
		panic(err)
	}

	authUseCase, err := authUseCaseLib.CreateAuthUseCase(authRepo, accountRepo, logger)
	if err != nil {
		panic(err)
	}
	accountUseCase, err := accountUseCaseLib.CreateAccountUseCase(accountRepo, storageRepo, logger)
	if err != nil {
		panic(err)
	}
	channelUseCase, err := channelUseCaseLib.CreateChannelUseCase(channelRepo, logger)
	if err != nil {
		panic(err)
	}

	customMiddleware := endpoint.Chain(
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
		httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME),
	)
	authMiddleware := httpMiddlewareKit.CreateAuthMiddleware(func(ctx context.Context, accessToken string) (int64, error) {
		return authUseCase.Verify(ctx, accessToken)
	})

	g := new(run.Group)
	{
		r := mux.NewRouter()
		options := []httptransport.ServerOption{
			httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
			httptransport.ServerAfter(httpKit.CustomAfterCtx),
			httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
		}
		r.Methods("POST").Path("/api/v1/account/register").Handler(
			httptransport.NewServer(
				customMiddleware(accountDeliveryHTTP.MakeAccountRegisterEndpoint(accountUseCase)),
				accountDeliveryHTTP.DecodeAccountRegisterRequest,
				accountDeliveryHTTP.EncodeAccountRegisterResponse,
				options...,
			))
		r.Methods("POST").Path("/api/v1/auth/login").Handler(
			httptransport.NewServer(
				customMiddleware(authDeliveryHTTP.MakeAuthLoginEndpoint(authUseCase)),
				authDeliveryHTTP.DecodeAuthLoginRequest,
				authDeliveryHTTP.EncodeAuthLoginResponse,
				options...,
			))
		r.Methods("POST").Path("/api/v1/auth/logout").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(authDeliveryHTTP.MakeAuthLogoutEndpoint(authUseCase))),
				authDeliveryHTTP.DecodeAuthLogoutRequest,
				authDeliveryHTTP.EncodeAuthLogoutResponse,
				options...,
			))
		r.Methods("POST").Path("/api/v1/auth/refresh").Handler(
			httptransport.NewServer(
				customMiddleware(authDeliveryHTTP.MakeRefreshTokenEndpoint(authUseCase)),
				authDeliveryHTTP.DecodeRefreshTokenRequest,
				authDeliveryHTTP.EncodeRefreshTokenResponse,
				options...,
			))
		r.Methods("POST").Path("/api/v1/auth/change-password").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(authDeliveryHTTP.MakeChangePasswordEndpoint(authUseCase))),
				authDeliveryHTTP.DecodeChangePasswordRequest,
				authDeliveryHTTP.EncodeChangePasswordResponse,
				options...,
			))
		r.Methods("GET").Path("/api/v1/account/current").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(accountDeliveryHTTP.MakeAccountCurrentEndpoint(accountUseCase))),
				accountDeliveryHTTP.DecodeAccountCurrentRequest,
				accountDeliveryHTTP.EncodeAccountCurrentResponse,
				options...,
			))
		r.Methods("PATCH").Path("/api/v1/account/update").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(accountDeliveryHTTP.MakeAccountUpdateEndpoint(accountUseCase))),
				accountDeliveryHTTP.DecodeAccountUpdateRequest,
				accountDeliveryHTTP.EncodeAccountUpdateResponse,
				options...,
			))
		r.Methods("PATCH").Path("/api/v1/account/avatar").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(accountDeliveryHTTP.MakeAccountAvatarEndpoint(accountUseCase))),
				accountDeliveryHTTP.DecodeAccountAvatarRequest,
				accountDeliveryHTTP.EncodeAccountAvatarResponse,
				options...,
			))
		r.Methods("PATCH").Path("/api/v1/account/cover").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(accountDeliveryHTTP.MakeAccountCoverEndpoint(accountUseCase))),
				accountDeliveryHTTP.DecodeAccountCoverRequest,
				accountDeliveryHTTP.EncodeAccountCoverResponse,
				options...,
			))
		r.Methods("GET").Path("/api/v1/channel/{username}").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(channelDeliveryHTTP.MakeChannelProfileEndpoint(channelUseCase))),
				channelDeliveryHTTP.DecodeChannelProfileRequest,
				channelDeliveryHTTP.EncodeChannelProfileResponse,
				options...,
			))
		r.Methods("GET").Path("/api/v1/account/history").Handler(
			httptransport.NewServer(
				customMiddleware(authMiddleware(channelDeliveryHTTP.MakeWatchHistoryEndpoint(channelUseCase))),
				channelDeliveryHTTP.DecodeWatchHistoryRequest,
				channelDeliveryHTTP.EncodeWatchHistoryResponse,
				options...,
			))
		if enableMetric {
			r.Handle("/metrics", promhttp.Handler())
		}
		httpSrv := http.Server{
			Addr:    httpAddr,
			Handler: r,
		}
		g.Add(func() error {
			logger.Info("http server listening", loggerKit.String("addr", httpAddr))
			return httpSrv.ListenAndServe()
		}, func(err error) {
			if err != nil {
				logger.Error("http server stopped", loggerKit.Error(err))
			}
			httpSrv.Close()
		})
	}
	{
		g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))
	}
	if err := g.Run(); err != nil {
		logger.Error("service stopped", loggerKit.Error(err))
	}
}
