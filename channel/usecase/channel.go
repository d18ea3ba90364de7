package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
	"github.com/superj80820/videotube/kit/code"
	loggerKit "github.com/superj80820/videotube/kit/logger"
)

type channelUseCase struct {
	channelRepo domain.ChannelRepo
	logger      *loggerKit.Logger
}

func CreateChannelUseCase(channelRepo domain.ChannelRepo, logger *loggerKit.Logger) (domain.ChannelUseCase, error) {
	if logger == nil {
		return nil, errors.New("create use case failed")
	}
	return &channelUseCase{
		channelRepo: channelRepo,
		logger:      logger,
	}, nil
}

func (c *channelUseCase) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody)
	}

	profile, err := c.channelRepo.GetChannelProfile(ctx, username, viewerID)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	} else if err != nil {
		return nil, errors.Wrap(err, "get channel profile failed")
	}
	return profile, nil
}

func (c *channelUseCase) GetWatchHistory(ctx context.Context, userID int64) ([]*domain.WatchHistoryVideo, error) {
	watchHistory, err := c.channelRepo.GetWatchHistory(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get watch history failed")
	}
	return watchHistory, nil
}
