package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/store"
)

const (
	DefaultNoncePruneInterval = 10 * time.Minute
	DefaultNonceRetention     = 24 * time.Hour
)

// NoncePruner periodically deletes replay nonces older than the retention
// period. Retention must stay above the replay window, otherwise a captured
// request becomes replayable once its nonce is gone.
type NoncePruner struct {
	nonces    store.NonceRepository
	interval  time.Duration
	retention time.Duration
	metrics   *metrics.Metrics
	now       func() time.Time

	logger *logger.Logger
}

func NewNoncePruner(nonces store.NonceRepository, interval, retention time.Duration, m *metrics.Metrics, logger *logger.Logger) *NoncePruner {
	if interval <= 0 {
		interval = DefaultNoncePruneInterval
	}
	if retention <= 0 {
		retention = DefaultNonceRetention
	}
	return &NoncePruner{
		nonces:    nonces,
		interval:  interval,
		retention: retention,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

// Run prunes once immediately and then every interval until ctx is done.
func (p *NoncePruner) Run(ctx context.Context) {
	p.logger.Info().
		Dur("interval", p.interval).
		Dur("retention", p.retention).
		Msg("nonce pruner started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.prune(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info().Msg("nonce pruner stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *NoncePruner) prune(ctx context.Context) {
	before := p.now().Add(-p.retention)

	deleted, err := p.nonces.DeleteOlderThan(ctx, before)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Time("before", before).Msg("error pruning nonces")
		}
		return
	}

	p.metrics.RecordNoncesPruned(deleted)
	if deleted > 0 {
		p.logger.Debug().Int64("deleted", deleted).Msg("expired nonces pruned")
	}
}
