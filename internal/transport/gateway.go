package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// Gateway selects the driver for a service's transport type.
type Gateway struct {
	drivers map[models.TransportType]Driver
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewGateway builds a gateway over a fixed driver registry.
func NewGateway(drivers map[models.TransportType]Driver, m *metrics.Metrics, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	registry := make(map[models.TransportType]Driver, len(drivers))
	for t, d := range drivers {
		registry[t] = d
	}
	return &Gateway{drivers: registry, metrics: m, logger: log}
}

// NewDefaultGateway registers the HTTP, AMQP and SOAP drivers.
func NewDefaultGateway(defaultTimeout, wsdlCacheTTL time.Duration, m *metrics.Metrics, log *logger.Logger) *Gateway {
	opts := []Option{WithDefaultTimeout(defaultTimeout), WithLogger(log)}
	client := utils.NewHTTPClient()

	return NewGateway(map[models.TransportType]Driver{
		models.TransportREST: NewHTTPDriver(client, opts...),
		models.TransportAMQP: NewAMQPDriver(nil, opts...),
		models.TransportSOAP: NewSOAPDriver(client, wsdlCacheTTL, opts...),
	}, m, log)
}

// Execute implements [Driver] by delegating to the registered driver. An
// unknown transport type yields an error result without any network
// activity.
func (g *Gateway) Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, method string) models.TransportResult {
	start := time.Now()

	driver, ok := g.drivers[service.Type]
	if !ok {
		result := models.ErrorResult(fmt.Sprintf("Unsupported transport type: %s", service.Type), start, 1, 0)
		g.metrics.RecordTransportCall(string(service.Type), false, time.Since(start))
		return result
	}

	result := driver.Execute(ctx, service, endpoint, payload, method)
	g.metrics.RecordTransportCall(string(service.Type), result.Success, time.Since(start))

	g.logger.Debug().
		Str("func", "Gateway.Execute").
		Str("service", service.Slug).
		Str("type", string(service.Type)).
		Bool("success", result.Success).
		Int("http_code", result.HTTPCode).
		Int64("latency_ms", result.Latency).
		Msg("transport call finished")

	return result
}
