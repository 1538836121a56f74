package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/integration-hub/internal/firewall"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// webhookService implements the inbound ingress sequence.
type webhookService struct {
	registry   ServiceRegistry
	firewall   Firewall
	dispatcher Dispatcher

	// firewallDisabled skips the firewall for every service.
	firewallDisabled bool

	logger *logger.Logger
}

// NewWebhookService wires the ingress. fw may be nil when firewallDisabled
// is set.
func NewWebhookService(registry ServiceRegistry, fw Firewall, dispatcher Dispatcher, firewallDisabled bool, logger *logger.Logger) WebhookService {
	return &webhookService{
		registry:         registry,
		firewall:         fw,
		dispatcher:       dispatcher,
		firewallDisabled: firewallDisabled || fw == nil,
		logger:           logger,
	}
}

// Receive processes one delivery in a fixed order: resolve the service,
// reject disabled services, run the firewall, check the inbound token, then
// require a non-empty JSON object body and dispatch it.
//
// A firewall rejection is returned as the guard's [*firewall.Rejection].
func (s *webhookService) Receive(ctx context.Context, slug string, in *models.Inspection) error {
	log := logger.FromContext(ctx)

	slug = CleanSlug(slug)
	if slug == "" {
		return ErrMissingSlug
	}

	service, err := s.registry.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !service.Enabled {
		return ErrServiceDisabled
	}

	if !s.firewallDisabled {
		if err = s.firewall.Inspect(ctx, service, in); err != nil {
			if _, ok := firewall.AsRejection(err); ok {
				return err
			}
			return fmt.Errorf("%w: %w", ErrFirewallUnavailable, err)
		}
	}

	if !tokenAccepted(service, in) {
		log.Warn().Str("service", service.Slug).Str("remote_addr", in.RemoteAddr).Msg("webhook token rejected")
		return ErrInvalidToken
	}

	if len(bytes.TrimSpace(in.RawBody)) == 0 {
		return ErrEmptyBody
	}
	if in.DecodeErr != nil || in.Payload == nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, in.DecodeErr)
	}

	if err = s.dispatcher.Dispatch(ctx, service, in); err != nil {
		log.Err(err).Str("service", service.Slug).Msg("webhook dispatch failed")
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	log.Info().Str("service", service.Slug).Int("bytes", len(in.RawBody)).Msg("webhook accepted")
	return nil
}

// tokenAccepted checks the service token against "Authorization: Bearer"
// and then "X-API-Key". A service without a token accepts everything.
func tokenAccepted(service models.ServiceConfig, in *models.Inspection) bool {
	expected := strings.TrimSpace(service.AuthToken)
	if expected == "" {
		return true
	}

	if bearer, err := utils.ParseBearerToken(in.HeaderValue("Authorization")); err == nil {
		if utils.ConstantTimeEqual(expected, bearer) {
			return true
		}
	}

	apiKey := strings.TrimSpace(in.HeaderValue("X-API-Key"))
	return apiKey != "" && utils.ConstantTimeEqual(expected, apiKey)
}

// CleanSlug keeps only letters, digits, '-' and '_'.
func CleanSlug(slug string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, slug)
}
