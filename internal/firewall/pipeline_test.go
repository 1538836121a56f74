package firewall

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

type recordingGuard struct {
	name  string
	err   error
	calls *[]string
}

func (g recordingGuard) Name() string { return g.name }

func (g recordingGuard) Inspect(context.Context, models.ServiceConfig, *models.Inspection) error {
	*g.calls = append(*g.calls, g.name)
	return g.err
}

func TestPipeline_DefaultOrder(t *testing.T) {
	p := NewDefaultPipeline(store.NewMemoryRateCounter(nil), newFakeNonceStore())

	assert.Equal(t, []string{GuardIPWhitelist, GuardRateLimit, GuardHMAC, GuardReplay}, p.Guards())
}

func TestPipeline_StopsAtFirstError(t *testing.T) {
	var calls []string
	blocked := &Rejection{Kind: KindFirewall, Guard: "second", Reason: "nope"}
	p := New([]Guard{
		recordingGuard{name: "first", calls: &calls},
		recordingGuard{name: "second", err: blocked, calls: &calls},
		recordingGuard{name: "third", calls: &calls},
	})

	err := p.Inspect(context.Background(), models.ServiceConfig{}, &models.Inspection{})

	assert.Same(t, blocked, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPipeline_InfrastructureErrorPropagates(t *testing.T) {
	var calls []string
	storeErr := errors.New("redis down")
	p := New([]Guard{
		recordingGuard{name: "first", err: storeErr, calls: &calls},
		recordingGuard{name: "second", calls: &calls},
	})

	err := p.Inspect(context.Background(), models.ServiceConfig{}, &models.Inspection{})
	assert.Same(t, storeErr, err)
	assert.Equal(t, []string{"first"}, calls)
}

func TestPipeline_IPRejectionLeavesStoresUntouched(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	counter := store.NewMemoryRateCounter(clock)
	nonces := newFakeNonceStore()
	m := metrics.NewMetrics()
	p := NewDefaultPipeline(counter, nonces, WithClock(clock), WithMetrics(m))

	service := models.ServiceConfig{
		ID:                9,
		IPWhitelist:       "10.0.0.0/24",
		RateLimitRequests: 5,
		RateLimitWindow:   60,
	}
	in := newInspection("10.0.1.50", []byte(`{}`), replayHeaders(now.Unix(), "n-1"))

	err := p.Inspect(context.Background(), service, in)
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, GuardIPWhitelist, rejection.Guard)

	count, err := counter.Count(context.Background(), RateLimitKey(9, now.Unix()/60))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, nonces.size())
	assert.Zero(t, nonces.existsCalls)
	assert.Zero(t, nonces.insertCalls)

	expected := `
# HELP firewall_rejections_total Total number of inbound requests rejected by a firewall guard
# TYPE firewall_rejections_total counter
firewall_rejections_total{guard="IP Whitelist"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "firewall_rejections_total"))
}

func TestPipeline_FullPass(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	counter := store.NewMemoryRateCounter(clock)
	nonces := newFakeNonceStore()
	p := NewDefaultPipeline(counter, nonces, WithClock(clock))

	body := []byte(`{"event":"push"}`)
	service := models.ServiceConfig{
		ID:                2,
		IPWhitelist:       "203.0.113.0/24",
		HMACSecret:        "k",
		RateLimitRequests: 1,
	}.WithDefaults()

	headers := replayHeaders(now.Unix(), "delivery-1")
	headers["X-Hub-Signature-256"] = "sha256=" + sign(t, "sha256", body, "k")

	require.NoError(t, p.Inspect(context.Background(), service, newInspection("203.0.113.5", body, headers)))
	assert.Equal(t, 1, nonces.size())

	// second delivery is over quota before the replay guard sees it
	headers[HeaderNonce] = "delivery-" + strconv.Itoa(2)
	err := p.Inspect(context.Background(), service, newInspection("203.0.113.5", body, headers))
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, GuardRateLimit, rejection.Guard)
	assert.Equal(t, 1, nonces.size())
}

func TestPipeline_HMACRejectionSkipsReplay(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	p := NewDefaultPipeline(store.NewMemoryRateCounter(nil), nonces, WithClock(func() time.Time { return now }))

	headers := replayHeaders(now.Unix(), "n")
	headers["X-Hub-Signature-256"] = "sha256=deadbeef"

	err := p.Inspect(context.Background(), models.ServiceConfig{ID: 1, HMACSecret: "k"}, newInspection("1.1.1.1", []byte("{}"), headers))
	assert.EqualError(t, err, "Invalid HMAC signature.")
	assert.Zero(t, nonces.insertCalls)
}
