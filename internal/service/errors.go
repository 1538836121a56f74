package service

import "errors"

var (
	ErrMissingSlug          = errors.New("missing required parameter: service")
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceDisabled      = errors.New("service is disabled")
	ErrInvalidServiceConfig = errors.New("invalid service configuration")

	ErrInvalidToken = errors.New("invalid authentication token")
	ErrEmptyBody    = errors.New("empty request body")
	ErrInvalidJSON  = errors.New("invalid JSON")

	ErrFirewallUnavailable = errors.New("firewall unavailable")
	ErrDispatchFailed      = errors.New("webhook dispatch failed")

	ErrInvalidCallRequest = errors.New("invalid call request")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
