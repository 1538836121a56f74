package http

import (
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/MKhiriev/integration-hub/internal/firewall"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/service"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// receiveWebhook handles POST <webhook path>?service=<slug>.
//
// The body is read exactly once and shared by the JSON decoder and the
// HMAC guard.
func (h *Handler) receiveWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()
	slug := r.URL.Query().Get("service")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = ErrBodyTooLarge
		}
		log.Err(err).Str("service", slug).Msg("error reading webhook body")
		h.respondWebhook(w, r, slug, err)
		return
	}

	in := models.NewInspection(remoteHost(r), r.Header, body, utils.GetTraceIDFromContext(ctx))

	err = h.services.WebhookService.Receive(ctx, slug, in)
	h.respondWebhook(w, r, slug, err)
}

func (h *Handler) respondWebhook(w http.ResponseWriter, r *http.Request, slug string, err error) {
	status := http.StatusOK
	message := ""
	if err != nil {
		status = statusFromError(err)
		message = messageFromError(err)
	}

	h.metrics.RecordWebhook(serviceLabel(slug, err), status)
	writeWebhookResponse(w, r, status, message)
}

// unresolvedService labels deliveries whose slug never matched a
// registered service.
const unresolvedService = "unknown"

// serviceLabel returns the metrics label for a delivery. Only slugs that
// resolved to a registered service are used, so senders cannot grow the
// series set with arbitrary query values.
func serviceLabel(slug string, err error) string {
	if err == nil {
		return service.CleanSlug(slug)
	}
	if _, ok := firewall.AsRejection(err); ok {
		return service.CleanSlug(slug)
	}
	for _, target := range []error{
		service.ErrServiceDisabled,
		service.ErrFirewallUnavailable,
		service.ErrInvalidToken,
		service.ErrEmptyBody,
		service.ErrInvalidJSON,
		service.ErrDispatchFailed,
	} {
		if errors.Is(err, target) {
			return service.CleanSlug(slug)
		}
	}
	return unresolvedService
}

func writeWebhookResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := models.WebhookResponse{Success: message == "", Error: message}
	if _, err := utils.WriteJSON(w, response, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing webhook response")
	}
}

// remoteHost returns the client address without its port.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
