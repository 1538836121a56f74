package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/internal/validators"
	"github.com/MKhiriev/integration-hub/models"
)

const serviceCacheSize = 256

// serviceRegistry reads service configurations from the repository and
// optionally keeps them in an expiring LRU cache.
type serviceRegistry struct {
	repository store.ServiceRepository
	validator  validators.Validator

	// cache is nil when caching is disabled.
	cache *expirable.LRU[string, models.ServiceConfig]

	logger *logger.Logger
}

// NewServiceRegistry builds a [ServiceRegistry]. A cacheTTL of zero disables
// caching, so configuration edits are visible on the next request.
func NewServiceRegistry(repository store.ServiceRepository, cacheTTL time.Duration, logger *logger.Logger) ServiceRegistry {
	r := &serviceRegistry{
		repository: repository,
		validator:  validators.NewServiceConfigValidator(),
		logger:     logger,
	}
	if cacheTTL > 0 {
		r.cache = expirable.NewLRU[string, models.ServiceConfig](serviceCacheSize, nil, cacheTTL)
	}
	return r
}

// GetBySlug returns the service configuration for slug with defaults
// applied.
//
// Errors:
//   - ErrServiceNotFound when no service has the slug;
//   - ErrInvalidServiceConfig when the stored configuration is unusable;
//   - a wrapped storage error otherwise.
func (r *serviceRegistry) GetBySlug(ctx context.Context, slug string) (models.ServiceConfig, error) {
	if r.cache != nil {
		if service, ok := r.cache.Get(slug); ok {
			return service, nil
		}
	}

	log := logger.FromContext(ctx)

	service, err := r.repository.FindBySlug(ctx, slug)
	if errors.Is(err, store.ErrServiceNotFound) {
		return models.ServiceConfig{}, ErrServiceNotFound
	}
	if err != nil {
		log.Err(err).Str("slug", slug).Msg("service lookup failed")
		return models.ServiceConfig{}, fmt.Errorf("service lookup failed: %w", err)
	}

	service = service.WithDefaults()
	if err = r.validator.Validate(ctx, service); err != nil {
		log.Err(err).Str("slug", slug).Msg("stored service configuration is invalid")
		return models.ServiceConfig{}, fmt.Errorf("%w: %w", ErrInvalidServiceConfig, err)
	}

	if r.cache != nil {
		r.cache.Add(slug, service)
	}
	return service, nil
}
