package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unknown driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, a webhook path without a leading slash).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidTransportConfigs indicates invalid outbound call settings
	// (for example, fewer than one attempt).
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a nonce retention shorter than the replay window).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrMissingTokenSignKey is returned when operator tokens are requested
	// without APP_TOKEN_SIGN_KEY.
	ErrMissingTokenSignKey = errors.New("token sign key is not configured")
)
