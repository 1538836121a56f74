package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
)

// appInfoService backs the version field of the health endpoint.
type appInfoService struct {
	version string

	logger *logger.Logger
}

// NewAppInfoService fails with [ErrVersionIsNotSpecified] when APP_VERSION
// is empty or blank, so a hub never reports an unknown build.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("app info service created")
	return &appInfoService{
		version: version,
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
