package firewall

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

// Pipeline runs guards strictly in the order they were given and stops at
// the first error. Later guards never observe a request an earlier guard
// blocked, so they never touch shared state for it.
type Pipeline struct {
	guards  []Guard
	metrics *metrics.Metrics
	log     *logger.Logger
}

// New builds a pipeline from guards, preserving their order.
func New(guards []Guard, opts ...Option) *Pipeline {
	o := newOptions(opts)
	return &Pipeline{
		guards:  append([]Guard(nil), guards...),
		metrics: o.metrics,
		log:     o.log,
	}
}

// NewDefaultPipeline builds the standard IP -> rate -> HMAC -> replay
// pipeline.
func NewDefaultPipeline(counter store.RateCounter, nonces store.NonceRepository, opts ...Option) *Pipeline {
	return New([]Guard{
		NewIPWhitelistGuard(),
		NewRateLimitGuard(counter, opts...),
		NewHMACGuard(),
		NewReplayGuard(nonces, opts...),
	}, opts...)
}

// Inspect runs every guard against the request. The first non-nil error is
// returned unmodified.
func (p *Pipeline) Inspect(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error {
	for _, guard := range p.guards {
		err := guard.Inspect(ctx, service, in)
		if err == nil {
			continue
		}

		log := p.logger(ctx)
		if rejection, ok := AsRejection(err); ok {
			p.metrics.RecordRejection(guard.Name())
			log.Warn().
				Str("func", "Pipeline.Inspect").
				Str("guard", guard.Name()).
				Str("kind", string(rejection.Kind)).
				Str("service", service.Slug).
				Msg(rejection.Reason)
		} else {
			log.Err(err).
				Str("func", "Pipeline.Inspect").
				Str("guard", guard.Name()).
				Str("service", service.Slug).
				Msg("firewall guard failed")
		}
		return err
	}
	return nil
}

// Guards returns the guard names in execution order.
func (p *Pipeline) Guards() []string {
	names := make([]string, len(p.guards))
	for i, guard := range p.guards {
		names[i] = guard.Name()
	}
	return names
}

func (p *Pipeline) logger(ctx context.Context) *logger.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return &logger.Logger{Logger: *l}
	}
	return p.log
}
