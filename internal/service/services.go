package service

import (
	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/store"
)

type Services struct {
	ServiceRegistry ServiceRegistry
	WebhookService  WebhookService
	GatewayService  GatewayService
	AuthService     AuthService
	AppInfoService  AppInfoService
}

// NewServices wires the service layer. fw and gateway are built by the
// caller so their stores, metrics and drivers can be chosen there.
func NewServices(storages *store.Storages, fw Firewall, gateway Gateway, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	registry := NewServiceRegistry(storages.ServiceRepository, cfg.App.ServiceCacheTTL, logger)

	return &Services{
		ServiceRegistry: registry,
		WebhookService:  NewWebhookService(registry, fw, NewEventDispatcher(storages.EventRepository, logger), cfg.App.FirewallDisabled, logger),
		GatewayService:  NewGatewayService(registry, gateway, cfg.Transport, logger),
		AuthService:     NewAuthService(cfg.App, 0, logger),
		AppInfoService:  appInfo,
	}, nil
}
