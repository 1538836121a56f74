package firewall

import (
	"context"

	"github.com/MKhiriev/integration-hub/models"
)

// Guard is a single firewall check.
//
// Inspect returns nil when the request may proceed, a [*Rejection] when it
// must be blocked, and any other error when the check itself could not be
// performed (for example the counter store is down).
type Guard interface {
	Name() string
	Inspect(ctx context.Context, service models.ServiceConfig, in *models.Inspection) error
}
