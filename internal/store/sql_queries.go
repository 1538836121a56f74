package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/integration-hub/models"
)

const (
	servicesTable      = "services"
	noncesTable        = "nonces"
	webhookEventsTable = "webhook_events"
)

var serviceColumns = []string{
	"id",
	"name",
	"slug",
	"enabled",
	"type",
	"base_url",
	"auth_type",
	"auth_token",
	"timeout",
	"ip_whitelist",
	"hmac_secret",
	"hmac_algo",
	"hmac_header",
	"rate_limit_requests",
	"rate_limit_window",
	"created_at",
	"updated_at",
}

// buildFindServiceBySlugQuery selects every column of one service.
func buildFindServiceBySlugQuery(b sq.StatementBuilderType, slug string) (string, []any, error) {
	return b.Select(serviceColumns...).
		From(servicesTable).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
}

func buildNonceExistsQuery(b sq.StatementBuilderType, serviceID int64, nonce string) (string, []any, error) {
	return b.Select("1").
		From(noncesTable).
		Where(sq.Eq{"service_id": serviceID, "nonce": nonce}).
		Limit(1).
		ToSql()
}

func buildInsertNonceQuery(b sq.StatementBuilderType, record models.NonceRecord) (string, []any, error) {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return b.Insert(noncesTable).
		Columns("service_id", "nonce", "timestamp", "created_at").
		Values(record.ServiceID, record.Nonce, record.Timestamp, createdAt).
		ToSql()
}

func buildDeleteNoncesQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(noncesTable).
		Where(sq.Lt{"created_at": before}).
		ToSql()
}

func buildInsertEventQuery(b sq.StatementBuilderType, event models.WebhookEvent) (string, []any, error) {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	source := event.Source
	if source == "" {
		source = models.WebhookEventSource
	}
	return b.Insert(webhookEventsTable).
		Columns("service_id", "source", "payload", "remote_addr", "trace_id", "created_at").
		Values(event.ServiceID, source, string(event.Payload), event.RemoteAddr, event.TraceID, createdAt).
		Suffix("RETURNING id").
		ToSql()
}
