package validators

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// Field name constants used to specify which fields should be validated.
const (
	FieldSlug      = "slug"
	FieldType      = "type"
	FieldBaseURL   = "base_url"
	FieldAuth      = "auth"
	FieldTimeout   = "timeout"
	FieldHMAC      = "hmac"
	FieldRateLimit = "rate_limit"

	FieldEndpoint = "endpoint"
	FieldMethod   = "method"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

var allowedTransportTypes = []models.TransportType{
	models.TransportREST,
	models.TransportAMQP,
	models.TransportSOAP,
}

var allowedAuthTypes = []models.AuthType{
	models.AuthNone,
	models.AuthBearer,
	models.AuthAPIKey,
	models.AuthBasic,
}

var allowedCallMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// ServiceConfigValidator implements [Validator] for service configurations
// loaded from storage and for gateway call requests.
//
// Configurations are edited outside of the hub, so this is the last line of
// defence against a typo turning into a silently open firewall or a call to
// the wrong place.
type ServiceConfigValidator struct{}

func NewServiceConfigValidator() Validator {
	return &ServiceConfigValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.ServiceConfig / *models.ServiceConfig
//   - models.CallRequest / *models.CallRequest
func (v *ServiceConfigValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ServiceConfig:
		return v.validateServiceConfig(ctx, value, fields...)
	case *models.ServiceConfig:
		return v.validateServiceConfig(ctx, *value, fields...)

	case models.CallRequest:
		return v.validateCallRequest(ctx, value, fields...)
	case *models.CallRequest:
		return v.validateCallRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ServiceConfigValidator) validateServiceConfig(_ context.Context, s models.ServiceConfig, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSlug, FieldType, FieldBaseURL, FieldAuth, FieldTimeout, FieldHMAC, FieldRateLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldSlug:
			if !slugPattern.MatchString(s.Slug) {
				return fmt.Errorf("%w: %q", ErrInvalidSlug, s.Slug)
			}
		case FieldType:
			if !contains(allowedTransportTypes, s.Type) {
				return fmt.Errorf("%w: %q", ErrInvalidTransportType, s.Type)
			}
		case FieldBaseURL:
			if err := validateBaseURL(s); err != nil {
				return err
			}
		case FieldAuth:
			if !contains(allowedAuthTypes, s.AuthType) {
				return fmt.Errorf("%w: %q", ErrInvalidAuthType, s.AuthType)
			}
			if s.AuthType != models.AuthNone && s.AuthToken == "" {
				return ErrMissingAuthToken
			}
		case FieldTimeout:
			if s.Timeout < 0 {
				return ErrInvalidTimeout
			}
		case FieldHMAC:
			if s.HMACSecret != "" && !utils.IsSupportedHMACAlgorithm(s.HMACAlgo) {
				return fmt.Errorf("%w: %q", ErrInvalidHMACAlgo, s.HMACAlgo)
			}
		case FieldRateLimit:
			if s.RateLimitRequests > 0 && s.RateLimitWindow < 0 {
				return ErrInvalidRateLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBaseURL checks the URL scheme against the transport type. An empty
// base URL is allowed; such a service can only receive webhooks.
func validateBaseURL(s models.ServiceConfig) error {
	if s.BaseURL == "" {
		return nil
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, s.BaseURL)
	}

	switch s.Type {
	case models.TransportAMQP:
		if u.Scheme != "amqp" && u.Scheme != "amqps" {
			return fmt.Errorf("%w: amqp service needs amqp:// or amqps://", ErrInvalidBaseURL)
		}
	default:
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%w: %s service needs http:// or https://", ErrInvalidBaseURL, s.Type)
		}
	}

	return nil
}

func (v *ServiceConfigValidator) validateCallRequest(_ context.Context, r models.CallRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEndpoint, FieldMethod}
	}

	for _, f := range fields {
		switch f {
		case FieldEndpoint:
			if strings.Contains(r.Endpoint, "://") {
				return fmt.Errorf("%w: endpoint must be relative", ErrInvalidCallEndpoint)
			}
		case FieldMethod:
			if r.Method != "" && !contains(allowedCallMethods, strings.ToUpper(r.Method)) {
				return fmt.Errorf("%w: %q", ErrInvalidCallMethod, r.Method)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
