package transport

import (
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
)

// DefaultTimeout bounds a call for services without their own timeout.
const DefaultTimeout = 30 * time.Second

type options struct {
	defaultTimeout time.Duration
	log            *logger.Logger
}

// Option customises a driver.
type Option func(*options)

// WithDefaultTimeout sets the timeout used when a service has none.
func WithDefaultTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultTimeout = d
		}
	}
}

// WithLogger sets the driver logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{defaultTimeout: DefaultTimeout, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
