package transport

import (
	"context"

	"github.com/MKhiriev/integration-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_driver_mock.go -package=mock

// Driver performs a single outbound call over one protocol.
//
// endpoint is the path suffix for HTTP, the routing key for AMQP and the
// operation name for SOAP. method is only meaningful for HTTP.
type Driver interface {
	Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, method string) models.TransportResult
}
