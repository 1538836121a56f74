package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/mock"
	"github.com/MKhiriev/integration-hub/models"
)

type stubDriver struct {
	calls  int
	result models.TransportResult
}

func (d *stubDriver) Execute(context.Context, models.ServiceConfig, string, map[string]any, string) models.TransportResult {
	d.calls++
	return d.result
}

func TestGateway_RoutesByType(t *testing.T) {
	rest := &stubDriver{result: models.SuccessResult("rest", time.Now(), 1, 200)}
	amqpDriver := &stubDriver{result: models.SuccessResult("amqp", time.Now(), 1, 0)}
	g := NewGateway(map[models.TransportType]Driver{
		models.TransportREST: rest,
		models.TransportAMQP: amqpDriver,
	}, metrics.NewMetrics(), nil)

	result := g.Execute(context.Background(), models.ServiceConfig{Type: models.TransportAMQP}, "", nil, "")

	require.True(t, result.Success)
	assert.Equal(t, "amqp", *result.Response)
	assert.Equal(t, 1, amqpDriver.calls)
	assert.Equal(t, 0, rest.calls)
}

func TestGateway_PassesCallThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := mock.NewMockDriver(ctrl)
	service := models.ServiceConfig{ID: 9, Type: models.TransportSOAP, BaseURL: "http://calc/?wsdl"}
	payload := map[string]any{"intA": 2, "intB": 3}

	driver.EXPECT().
		Execute(gomock.Any(), service, "Add", payload, "").
		Return(models.SuccessResult(`{"AddResult":"5"}`, time.Now(), 1, 200))

	g := NewGateway(map[models.TransportType]Driver{models.TransportSOAP: driver}, nil, nil)
	result := g.Execute(context.Background(), service, "Add", payload, "")

	require.True(t, result.Success)
	assert.Equal(t, 200, result.HTTPCode)
}

func TestGateway_UnsupportedType(t *testing.T) {
	g := NewGateway(map[models.TransportType]Driver{}, nil, nil)

	result := g.Execute(context.Background(), models.ServiceConfig{Type: "grpc"}, "", nil, "")

	assert.False(t, result.Success)
	assert.Equal(t, "Unsupported transport type: grpc", *result.Error)
	assert.Nil(t, result.Response)
	assert.Equal(t, 1, result.Attempts)
}

func TestNewDefaultGateway_RegistersAllDrivers(t *testing.T) {
	g := NewDefaultGateway(time.Second, time.Minute, nil, nil)

	for _, typ := range []models.TransportType{models.TransportREST, models.TransportAMQP, models.TransportSOAP} {
		_, ok := g.drivers[typ]
		assert.True(t, ok, typ)
	}
}
