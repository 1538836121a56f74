package handler

import (
	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/handler/http"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, m, cfg, logger)}, nil
}
