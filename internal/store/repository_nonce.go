package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/models"
)

// nonceRepository is the SQL-backed implementation of [NonceRepository].
// Uniqueness of (service_id, nonce) is enforced by the database, never by a
// lock in this process, so it holds across instances sharing the database.
type nonceRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewNonceRepository(db *DB, logger *logger.Logger) NonceRepository {
	logger.Debug().Msg("creating nonce repository")
	return &nonceRepository{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether the nonce was already recorded for the service.
func (r *nonceRepository) Exists(ctx context.Context, serviceID int64, nonce string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNonceExistsQuery(r.db.builder(), serviceID, nonce)
	if err != nil {
		log.Err(err).Str("func", "*nonceRepository.Exists").Msg("failed to build query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", "*nonceRepository.Exists").Int64("service_id", serviceID).Msg("failed to look up nonce")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// Insert records the nonce. A uniqueness violation is returned as
// [ErrNonceAlreadyExists].
func (r *nonceRepository) Insert(ctx context.Context, record models.NonceRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertNonceQuery(r.db.builder(), record)
	if err != nil {
		log.Err(err).Str("func", "*nonceRepository.Insert").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.isUniqueViolation(err) {
			log.Warn().Str("func", "*nonceRepository.Insert").Int64("service_id", record.ServiceID).Msg("nonce inserted concurrently")
			return ErrNonceAlreadyExists
		}
		log.Err(err).
			Str("func", "*nonceRepository.Insert").
			Int64("service_id", record.ServiceID).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to insert nonce")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteOlderThan removes nonce records created before the given instant and
// returns how many were deleted.
func (r *nonceRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteNoncesQuery(r.db.builder(), before)
	if err != nil {
		log.Err(err).Str("func", "*nonceRepository.DeleteOlderThan").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*nonceRepository.DeleteOlderThan").Msg("failed to delete nonces")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}
