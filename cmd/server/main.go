package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/firewall"
	"github.com/MKhiriev/integration-hub/internal/handler"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/server"
	"github.com/MKhiriev/integration-hub/internal/service"
	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/internal/transport"
	"github.com/MKhiriev/integration-hub/internal/workers"
	"github.com/MKhiriev/integration-hub/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("hub-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("hub-server", cfg.App.LogLevel)
	log.Info().Str("build", buildInfo.String()).Msg("starting integration hub")
	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	m := metrics.NewMetrics()

	var fw service.Firewall
	if !cfg.App.FirewallDisabled {
		fw = firewall.NewDefaultPipeline(storages.RateCounter, storages.NonceRepository,
			firewall.WithReplayMaxAge(cfg.App.ReplayMaxAge),
			firewall.WithMetrics(m),
			firewall.WithLogger(log),
		)
	} else {
		log.Warn().Msg("request firewall is disabled")
	}

	gateway := transport.NewDefaultGateway(cfg.Transport.DefaultTimeout, cfg.Transport.WSDLCacheTTL, m, log)

	services, err := service.NewServices(storages, fw, gateway, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(
		workers.NewNoncePruner(storages.NonceRepository, cfg.Workers.NoncePruneInterval, cfg.Workers.NonceRetention, m,
			logger.NewLogger("nonce-pruner", cfg.App.LogLevel)),
	)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
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

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
