package store

import (
	"context"
	"time"

	"github.com/MKhiriev/integration-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ServiceRepository reads service configurations. The hub never writes them;
// they are managed by an external configuration tool.
type ServiceRepository interface {
	FindBySlug(ctx context.Context, slug string) (models.ServiceConfig, error)
}

// NonceRepository persists replay nonces. Insert must rely on the
// (service_id, nonce) uniqueness constraint and report a violation as
// [ErrNonceAlreadyExists].
type NonceRepository interface {
	Exists(ctx context.Context, serviceID int64, nonce string) (bool, error)
	Insert(ctx context.Context, record models.NonceRecord) error
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// EventRepository stores accepted webhook payloads.
type EventRepository interface {
	Save(ctx context.Context, event models.WebhookEvent) (int64, error)
}

// RateCounter is a shared key-value counter with atomic
// increment-with-expiry semantics.
type RateCounter interface {
	// Count returns the current value of key, 0 when absent or expired.
	Count(ctx context.Context, key string) (int64, error)
	// Increment atomically adds one to key and returns the new value. The
	// expiry is set when the key is created and never extended.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// ErrorClassificator decides how a driver error should be treated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
