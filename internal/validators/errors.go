package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidSlug          = errors.New("invalid service slug")
	ErrInvalidTransportType = errors.New("invalid transport type")
	ErrInvalidBaseURL       = errors.New("invalid base url")
	ErrInvalidAuthType      = errors.New("invalid auth type")
	ErrMissingAuthToken     = errors.New("auth token is required for this auth type")
	ErrInvalidTimeout       = errors.New("invalid timeout")
	ErrInvalidHMACAlgo      = errors.New("unsupported hmac algorithm")
	ErrInvalidRateLimit     = errors.New("invalid rate limit")
	ErrInvalidCallEndpoint  = errors.New("invalid call endpoint")
	ErrInvalidCallMethod    = errors.New("invalid call method")
)
