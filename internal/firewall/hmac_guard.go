package firewall

import (
	"context"
	"strings"

	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// GuardHMAC is the name of [HMACGuard].
const GuardHMAC = "HMAC Signature Verification"

// HMACGuard verifies the signature header against an HMAC of the raw body.
//
// The header may carry the bare hex digest or the "<algo>=<digest>" form
// used by GitHub. Both comparisons are constant time.
type HMACGuard struct{}

func NewHMACGuard() *HMACGuard {
	return &HMACGuard{}
}

func (g *HMACGuard) Name() string {
	return GuardHMAC
}

func (g *HMACGuard) Inspect(_ context.Context, service models.ServiceConfig, in *models.Inspection) error {
	if service.HMACSecret == "" {
		return nil
	}

	header := service.HMACHeader
	if header == "" {
		header = models.DefaultHMACHeader
	}
	algo := strings.ToLower(strings.TrimSpace(service.HMACAlgo))
	if algo == "" {
		algo = models.DefaultHMACAlgo
	}

	signature := strings.TrimSpace(in.HeaderValue(header))
	if signature == "" {
		return reject(GuardHMAC, "Missing signature header: %s", header)
	}

	var body []byte
	if in != nil {
		body = in.RawBody
	}

	digest, err := utils.HMACHex(algo, body, service.HMACSecret)
	if err != nil {
		return misconfigured(GuardHMAC, "Unsupported HMAC algorithm: %s", algo)
	}

	if utils.ConstantTimeEqual(signature, digest) || utils.ConstantTimeEqual(signature, algo+"="+digest) {
		return nil
	}

	return reject(GuardHMAC, "Invalid HMAC signature.")
}
