package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/logger"
)

// Storages aggregates every storage dependency of the service layer.
type Storages struct {
	DB                *DB
	ServiceRepository ServiceRepository
	NonceRepository   NonceRepository
	EventRepository   EventRepository
	RateCounter       RateCounter
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories. The rate counter is backed by Redis when an
// address is configured and by process memory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	var counter RateCounter
	if cfg.Redis.Address != "" {
		counter, err = NewRedisRateCounter(ctx, cfg.Redis, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		log.Warn().Str("func", "NewStorages").Msg("redis address is empty, rate counters are kept in memory")
		counter = NewMemoryRateCounter(nil)
	}

	return &Storages{
		DB:                db,
		ServiceRepository: NewServiceRepository(db, log),
		NonceRepository:   NewNonceRepository(db, log),
		EventRepository:   NewEventRepository(db, log),
		RateCounter:       counter,
	}, nil
}

// Close releases the database connection and the counter client.
func (s *Storages) Close() error {
	var err error
	if c, ok := s.RateCounter.(interface{ Close() error }); ok {
		err = c.Close()
	}
	if s.DB != nil {
		if dbErr := s.DB.Close(); dbErr != nil {
			err = dbErr
		}
	}
	return err
}
