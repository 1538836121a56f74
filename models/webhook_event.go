package models

import (
	"encoding/json"
	"time"
)

// WebhookEventSource identifies where a stored event came from.
const WebhookEventSource = "webhook"

// WebhookEvent is an accepted inbound webhook delivery handed to the
// dispatcher after the firewall and the token check passed.
type WebhookEvent struct {
	ID         int64           `json:"id"`
	ServiceID  int64           `json:"service_id"`
	Source     string          `json:"source"`
	Payload    json.RawMessage `json:"payload"`
	RemoteAddr string          `json:"remote_addr"`
	TraceID    string          `json:"trace_id"`
	CreatedAt  time.Time       `json:"created_at"`
}
