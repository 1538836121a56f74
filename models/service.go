// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// TransportType names the protocol a service is reached over. It selects the
// transport driver that executes outbound calls.
type TransportType string

const (
	TransportREST TransportType = "rest"
	TransportAMQP TransportType = "amqp"
	TransportSOAP TransportType = "soap"
)

// AuthType names how a service authenticates, both for outbound calls made
// by the gateway and for inbound webhook token checks.
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthAPIKey AuthType = "apikey"
	AuthBasic  AuthType = "basic"
)

const (
	// DefaultHMACAlgo is used when a service has a secret but no algorithm.
	DefaultHMACAlgo = "sha256"
	// DefaultHMACHeader is the header carrying the webhook signature.
	DefaultHMACHeader = "X-Hub-Signature-256"
	// DefaultRateLimitWindow is the fixed window length in seconds.
	DefaultRateLimitWindow = 60
)

// ServiceConfig describes one external integration.
//
// A ServiceConfig is created and edited by configuration management outside
// of this application and is read-only to the firewall and the transport
// layer. An empty security field (whitelist, secret, zero rate limit) turns
// the corresponding firewall guard into a no-op.
type ServiceConfig struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Enabled bool   `json:"enabled"`

	// Type selects the transport driver.
	Type TransportType `json:"type"`

	// BaseURL is an HTTP base URL, an AMQP connection string or a WSDL
	// location depending on Type.
	BaseURL string `json:"base_url"`

	AuthType  AuthType `json:"auth_type"`
	AuthToken string   `json:"-"`

	// Timeout is the per-request timeout in seconds.
	Timeout int `json:"timeout"`

	// IPWhitelist is a comma separated list of addresses and IPv4 CIDR ranges.
	IPWhitelist string `json:"ip_whitelist"`

	HMACSecret string `json:"-"`
	HMACAlgo   string `json:"hmac_algo"`
	HMACHeader string `json:"hmac_header"`

	// RateLimitRequests is the quota per window; zero or less disables the limiter.
	RateLimitRequests int `json:"rate_limit_requests"`
	// RateLimitWindow is the fixed window length in seconds.
	RateLimitWindow int `json:"rate_limit_window"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeoutDuration returns Timeout as a [time.Duration], falling back to def
// when no timeout is configured.
func (s ServiceConfig) TimeoutDuration(def time.Duration) time.Duration {
	if s.Timeout <= 0 {
		return def
	}
	return time.Duration(s.Timeout) * time.Second
}

// WithDefaults returns a copy with empty optional fields filled in: HMAC
// algorithm and header, rate limit window and auth type. The algorithm name
// is lower-cased.
func (s ServiceConfig) WithDefaults() ServiceConfig {
	if s.HMACAlgo == "" {
		s.HMACAlgo = DefaultHMACAlgo
	}
	s.HMACAlgo = strings.ToLower(strings.TrimSpace(s.HMACAlgo))
	if s.HMACHeader == "" {
		s.HMACHeader = DefaultHMACHeader
	}
	if s.RateLimitWindow <= 0 {
		s.RateLimitWindow = DefaultRateLimitWindow
	}
	if s.AuthType == "" {
		s.AuthType = AuthNone
	}
	return s
}
