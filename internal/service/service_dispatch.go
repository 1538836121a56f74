package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

// eventDispatcher stores every accepted delivery as a webhook event.
type eventDispatcher struct {
	events store.EventRepository
	logger *logger.Logger
}

func NewEventDispatcher(events store.EventRepository, logger *logger.Logger) Dispatcher {
	return &eventDispatcher{events: events, logger: logger}
}

func (d *eventDispatcher) Dispatch(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error {
	id, err := d.events.Save(ctx, models.WebhookEvent{
		ServiceID:  service.ID,
		Source:     models.WebhookEventSource,
		Payload:    json.RawMessage(in.RawBody),
		RemoteAddr: in.RemoteAddr,
		TraceID:    in.TraceID,
	})
	if err != nil {
		return fmt.Errorf("saving webhook event: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Int64("event_id", id).
		Str("service", service.Slug).
		Msg("webhook event stored")
	return nil
}
