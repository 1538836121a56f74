package firewall

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

// GuardReplay is the name of [ReplayGuard].
const GuardReplay = "Replay Protection"

// Header names read by [ReplayGuard].
const (
	HeaderTimestamp      = "X-Request-Timestamp"
	HeaderNonce          = "X-Nonce"
	HeaderGitHubDelivery = "X-GitHub-Delivery"
)

// ReplayGuard rejects stale requests and reused nonces.
//
// The guard is only active for requests that carry both a timestamp and a
// nonce. Senders that supply neither pass through unchecked.
type ReplayGuard struct {
	nonces store.NonceRepository
	maxAge time.Duration
	now    func() time.Time
}

func NewReplayGuard(nonces store.NonceRepository, opts ...Option) *ReplayGuard {
	o := newOptions(opts)
	return &ReplayGuard{nonces: nonces, maxAge: o.replayMaxAge, now: o.now}
}

func (g *ReplayGuard) Name() string {
	return GuardReplay
}

func (g *ReplayGuard) Inspect(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error {
	rawTimestamp := strings.TrimSpace(in.HeaderValue(HeaderTimestamp))
	nonce := strings.TrimSpace(in.HeaderValue(HeaderNonce))
	if nonce == "" {
		nonce = strings.TrimSpace(in.HeaderValue(HeaderGitHubDelivery))
	}
	if rawTimestamp == "" || nonce == "" {
		return nil
	}

	timestamp, err := strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return reject(GuardReplay, "Invalid request timestamp.")
	}

	now := g.now()
	age := now.Unix() - timestamp
	if age < 0 {
		age = -age
	}
	if age > int64(g.maxAge/time.Second) {
		return reject(GuardReplay, "Request timestamp too old or in future.")
	}

	exists, err := g.nonces.Exists(ctx, service.ID, nonce)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNonceStoreFailed, err)
	}
	if exists {
		return reject(GuardReplay, "Replay detected: Nonce already used.")
	}

	err = g.nonces.Insert(ctx, models.NonceRecord{
		ServiceID: service.ID,
		Nonce:     nonce,
		Timestamp: timestamp,
		CreatedAt: now,
	})
	if errors.Is(err, store.ErrNonceAlreadyExists) {
		return reject(GuardReplay, "Replay detected: Race condition on nonce.")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNonceStoreFailed, err)
	}

	return nil
}
