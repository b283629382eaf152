package main

import (
	"context"
	"fmt"
	"time"

	"github.com/avelichko/imagegate/internal/allowlist"
	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/handler"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/server"
	"github.com/avelichko/imagegate/internal/service"
	"github.com/avelichko/imagegate/internal/store"
	"github.com/avelichko/imagegate/internal/utils"
	"github.com/avelichko/imagegate/internal/workers"
	"github.com/avelichko/imagegate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const startupTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("imagegate")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if err = cfg.CheckStrictness(log); err != nil {
		log.Fatal().Err(err).Msg("configuration rejected")
	}

	matcher, err := allowlist.NewMatcher(cfg.Images)
	if err != nil {
		log.Fatal().Err(err).Msg("error compiling allowlist")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	fetcher := service.NewRemoteFetcher(utils.NewHTTPClient(cfg.Server.RequestTimeout), log)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	services, err := service.NewServices(matcher, storages, fetcher, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, cfg.Experimental, log)
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
