// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultLogLevel           = "info"
	defaultReplayMaxAge       = 5 * time.Minute
	defaultMaxBodyBytes       = 1 << 20
	defaultHTTPAddress        = "0.0.0.0:8080"
	defaultRequestTimeout     = 30 * time.Second
	defaultWebhookPath        = "/webhook"
	defaultTransportTimeout   = 30 * time.Second
	defaultMaxAttempts        = 1
	defaultRetryBackoff       = 500 * time.Millisecond
	defaultWSDLCacheTTL       = time.Hour
	defaultNoncePruneInterval = time.Hour
	defaultNonceRetention     = 24 * time.Hour
)

// applyDefaults fills every zero field that has a sensible default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = defaultLogLevel
	}
	if cfg.App.ReplayMaxAge == 0 {
		cfg.App.ReplayMaxAge = defaultReplayMaxAge
	}
	if cfg.App.MaxBodyBytes == 0 {
		cfg.App.MaxBodyBytes = defaultMaxBodyBytes
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.WebhookPath == "" {
		cfg.Server.WebhookPath = defaultWebhookPath
	}

	if cfg.Transport.DefaultTimeout == 0 {
		cfg.Transport.DefaultTimeout = defaultTransportTimeout
	}
	if cfg.Transport.MaxAttempts == 0 {
		cfg.Transport.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Transport.RetryBackoff == 0 {
		cfg.Transport.RetryBackoff = defaultRetryBackoff
	}
	if cfg.Transport.WSDLCacheTTL == 0 {
		cfg.Transport.WSDLCacheTTL = defaultWSDLCacheTTL
	}

	if cfg.Workers.NoncePruneInterval == 0 {
		cfg.Workers.NoncePruneInterval = defaultNoncePruneInterval
	}
	if cfg.Workers.NonceRetention == 0 {
		cfg.Workers.NonceRetention = defaultNonceRetention
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		return fmt.Errorf("%w: webhook path must start with '/'", ErrInvalidServerConfigs)
	}

	if cfg.Transport.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidTransportConfigs)
	}
	if cfg.Transport.DefaultTimeout < 0 || cfg.Transport.RetryBackoff < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidTransportConfigs)
	}

	// Timestamps are accepted up to ReplayMaxAge on either side of now, so a
	// nonce has to outlive a full 2*ReplayMaxAge span.
	if cfg.Workers.NonceRetention < 2*cfg.App.ReplayMaxAge {
		return fmt.Errorf("%w: nonce retention %s is shorter than twice the replay window %s",
			ErrInvalidWorkerConfigs, cfg.Workers.NonceRetention, cfg.App.ReplayMaxAge)
	}

	return nil
}
