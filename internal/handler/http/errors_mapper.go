package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/integration-hub/internal/firewall"
	"github.com/MKhiriev/integration-hub/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrMissingSlug:          http.StatusBadRequest,
	service.ErrEmptyBody:            http.StatusBadRequest,
	service.ErrInvalidJSON:          http.StatusBadRequest,
	service.ErrInvalidCallRequest:   http.StatusBadRequest,
	service.ErrServiceNotFound:      http.StatusNotFound,
	service.ErrServiceDisabled:      http.StatusForbidden,
	service.ErrInvalidToken:         http.StatusForbidden,
	service.ErrInvalidServiceConfig: http.StatusInternalServerError,
	service.ErrFirewallUnavailable:  http.StatusInternalServerError,
	service.ErrDispatchFailed:       http.StatusInternalServerError,

	ErrBodyTooLarge:    http.StatusRequestEntityTooLarge,
	ErrInvalidCallBody: http.StatusBadRequest,
}

// errorMessageMap holds the public wording of errors shown to webhook
// senders and operators.
var errorMessageMap = map[error]string{
	service.ErrMissingSlug:          "Missing required parameter: service",
	service.ErrEmptyBody:            "Empty request body",
	service.ErrServiceNotFound:      "Service not found",
	service.ErrServiceDisabled:      "Service is disabled",
	service.ErrInvalidToken:         "Invalid authentication token",
	service.ErrInvalidServiceConfig: "Service is misconfigured",
	ErrBodyTooLarge:                 "Request body too large",
}

func statusFromError(err error) int {
	if _, ok := firewall.AsRejection(err); ok {
		return http.StatusForbidden
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text sent back for err. Internal failures
// are reported generically.
func messageFromError(err error) string {
	if rejection, ok := firewall.AsRejection(err); ok {
		return "Firewall blocked: " + rejection.Reason
	}
	if errors.Is(err, service.ErrInvalidJSON) {
		return "Invalid JSON: " + strings.TrimPrefix(err.Error(), service.ErrInvalidJSON.Error()+": ")
	}
	if errors.Is(err, service.ErrInvalidCallRequest) || errors.Is(err, ErrInvalidCallBody) {
		return err.Error()
	}
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}
