package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/models"
)

// saveEventBackoff retries transient failures (lost connection, serialization
// failure, busy SQLite file) twice.
func saveEventBackoff() retry.Backoff {
	return retry.WithMaxRetries(2, retry.NewExponential(20*time.Millisecond))
}

type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating webhook event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts the event and returns its identifier.
func (r *eventRepository) Save(ctx context.Context, event models.WebhookEvent) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertEventQuery(r.db.builder(), event)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Save").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	err = retry.Do(ctx, saveEventBackoff(), func(ctx context.Context) error {
		scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(&id)
		if scanErr != nil && r.db.retryable(scanErr) {
			log.Warn().Err(scanErr).Str("func", "*eventRepository.Save").Msg("transient error saving webhook event, retrying")
			return retry.RetryableError(scanErr)
		}
		return scanErr
	})
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Save").Int64("service_id", event.ServiceID).Msg("failed to save webhook event")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if id == 0 {
		return 0, ErrEventNotSaved
	}

	return id, nil
}
