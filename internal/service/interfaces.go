package service

import (
	"context"

	"github.com/MKhiriev/integration-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ServiceRegistry resolves service configurations. Returned configurations
// have defaults applied and passed validation.
type ServiceRegistry interface {
	GetBySlug(ctx context.Context, slug string) (models.ServiceConfig, error)
}

// WebhookService accepts one inbound webhook delivery.
type WebhookService interface {
	Receive(ctx context.Context, slug string, in *models.Inspection) error
}

// Dispatcher hands an accepted webhook delivery to the rest of the system.
type Dispatcher interface {
	Dispatch(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error
}

// Firewall inspects an inbound request before it is processed.
type Firewall interface {
	Inspect(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error
}

// Gateway executes one outbound call. Failures are reported in the result.
type Gateway interface {
	Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, method string) models.TransportResult
}

// GatewayService calls a configured service on behalf of an operator.
type GatewayService interface {
	Call(ctx context.Context, slug string, request models.CallRequest) (models.TransportResult, error)
}

// AuthService issues and verifies operator tokens.
type AuthService interface {
	CreateToken(ctx context.Context, operator string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
