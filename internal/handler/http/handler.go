package http

import (
	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/service"
	"github.com/MKhiriev/integration-hub/internal/utils"
)

// defaultMaxBodyBytes caps webhook bodies when the configuration leaves the
// limit unset.
const defaultMaxBodyBytes int64 = 1 << 20

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	webhookPath       string
	maxBodyBytes      int64
	trustProxyHeaders bool
	operatorAPI       bool

	traceIDs *utils.TraceIDs

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	webhookPath := cfg.Server.WebhookPath
	if webhookPath == "" {
		webhookPath = "/webhook"
	}
	maxBody := cfg.App.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	logger.Info().Str("webhook_path", webhookPath).Msg("http handler created")
	return &Handler{
		services:          services,
		metrics:           m,
		webhookPath:       webhookPath,
		maxBodyBytes:      maxBody,
		trustProxyHeaders: cfg.Server.TrustProxyHeaders,
		operatorAPI:       cfg.App.TokenSignKey != "",
		traceIDs:          utils.NewTraceIDs(),
		logger:            logger,
	}
}
