package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/models"
)

// serviceRepository is the SQL-backed implementation of [ServiceRepository].
// It reads the "services" table, which is maintained outside the hub.
type serviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewServiceRepository constructs a [ServiceRepository] backed by the
// provided database connection and logger.
func NewServiceRepository(db *DB, logger *logger.Logger) ServiceRepository {
	logger.Debug().Msg("creating service repository")
	return &serviceRepository{
		db:     db,
		logger: logger,
	}
}

// FindBySlug returns the service configuration whose slug matches.
//
// Error handling:
//   - no row → [ErrServiceNotFound].
//   - query build failure → [ErrBuildingSQLQuery].
//   - any other driver-level error → [ErrScanningRow] wrapping the cause.
func (r *serviceRepository) FindBySlug(ctx context.Context, slug string) (models.ServiceConfig, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindServiceBySlugQuery(r.db.builder(), slug)
	if err != nil {
		log.Err(err).Str("func", "*serviceRepository.FindBySlug").Msg("failed to build query")
		return models.ServiceConfig{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.ServiceConfig
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Slug,
		&s.Enabled,
		&s.Type,
		&s.BaseURL,
		&s.AuthType,
		&s.AuthToken,
		&s.Timeout,
		&s.IPWhitelist,
		&s.HMACSecret,
		&s.HMACAlgo,
		&s.HMACHeader,
		&s.RateLimitRequests,
		&s.RateLimitWindow,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceConfig{}, ErrServiceNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*serviceRepository.FindBySlug").
			Str("slug", slug).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to load service")
		return models.ServiceConfig{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}
