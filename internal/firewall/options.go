package firewall

import (
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
)

// DefaultReplayMaxAge is the accepted distance between the request timestamp
// and the current time.
const DefaultReplayMaxAge = 300 * time.Second

type options struct {
	now          func() time.Time
	replayMaxAge time.Duration
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// Option customises guards and pipelines.
type Option func(*options)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithReplayMaxAge sets the maximum accepted request age.
func WithReplayMaxAge(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.replayMaxAge = d
		}
	}
}

// WithMetrics counts rejections on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		replayMaxAge: DefaultReplayMaxAge,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
