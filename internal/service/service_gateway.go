package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/validators"
	"github.com/MKhiriev/integration-hub/models"
)

const defaultRetryBackoff = 500 * time.Millisecond

// gatewayService resolves a service and calls it through the gateway,
// retrying transient failures.
type gatewayService struct {
	registry  ServiceRegistry
	gateway   Gateway
	validator validators.Validator

	maxAttempts int
	backoff     time.Duration

	logger *logger.Logger
}

func NewGatewayService(registry ServiceRegistry, gateway Gateway, cfg config.Transport, logger *logger.Logger) GatewayService {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &gatewayService{
		registry:    registry,
		gateway:     gateway,
		validator:   validators.NewServiceConfigValidator(),
		maxAttempts: attempts,
		backoff:     backoff,
		logger:      logger,
	}
}

// Call executes request against the service named by slug.
//
// Transport failures are not errors: they come back as an unsuccessful
// result whose Attempts field holds the number of tries. The error return
// is reserved for requests that never reached the gateway (unknown or
// disabled service, invalid request).
func (s *gatewayService) Call(ctx context.Context, slug string, request models.CallRequest) (models.TransportResult, error) {
	service, err := s.registry.GetBySlug(ctx, slug)
	if err != nil {
		return models.TransportResult{}, err
	}
	if !service.Enabled {
		return models.TransportResult{}, ErrServiceDisabled
	}
	if err = s.validator.Validate(ctx, request); err != nil {
		return models.TransportResult{}, fmt.Errorf("%w: %w", ErrInvalidCallRequest, err)
	}

	log := logger.FromContext(ctx)

	var (
		result   models.TransportResult
		attempts int
	)
	backoff := retry.WithMaxRetries(uint64(s.maxAttempts-1), retry.NewExponential(s.backoff))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		result = s.gateway.Execute(ctx, service, request.Endpoint, request.Payload, request.Method)
		if result.Success || !retryable(result) {
			return nil
		}
		log.Warn().
			Str("service", service.Slug).
			Int("attempt", attempts).
			Int("http_code", result.HTTPCode).
			Msg("transport call failed, retrying")
		return retry.RetryableError(errors.New(resultError(result)))
	})
	if err != nil && attempts == 0 {
		// cancelled before the first try
		return models.TransportResult{}, err
	}

	result.Attempts = attempts
	return result, nil
}

// retryable reports whether a failed call may succeed when repeated:
// connection level failures, 429 and 5xx. SOAP faults are answers from the
// service and are final.
func retryable(result models.TransportResult) bool {
	msg := resultError(result)
	if strings.HasPrefix(msg, "SOAP Fault:") || strings.HasPrefix(msg, "Unsupported transport type") {
		return false
	}
	code := result.HTTPCode
	return code == 0 || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func resultError(result models.TransportResult) string {
	if result.Error == nil {
		return ""
	}
	return *result.Error
}
