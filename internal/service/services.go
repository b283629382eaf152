package service

import (
	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/store"
	"github.com/avelichko/imagegate/models"
)

type Services struct {
	ImageService   ImageService
	AppInfoService AppInfoService
}

func NewServices(matcher *allowlist.Matcher, storages *store.Storages, fetcher RemoteFetcher, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		ImageService:   NewImageService(matcher, storages.CacheIndex, storages.Blobs, fetcher, cfg.Images, logger),
		AppInfoService: appInfoService,
	}, nil
}
