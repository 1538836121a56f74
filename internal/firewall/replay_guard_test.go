package firewall

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/integration-hub/models"
)

func replayHeaders(ts int64, nonce string) map[string]string {
	return map[string]string{
		HeaderTimestamp: strconv.FormatInt(ts, 10),
		HeaderNonce:     nonce,
	}
}

func TestReplayGuard_SameNonceTwice(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	g := NewReplayGuard(nonces, WithClock(func() time.Time { return now }))
	service := models.ServiceConfig{ID: 4}

	in := newInspection("1.1.1.1", nil, replayHeaders(now.Unix(), "abc-1"))
	require.NoError(t, g.Inspect(context.Background(), service, in))

	rejection, ok := AsRejection(g.Inspect(context.Background(), service, in))
	require.True(t, ok)
	assert.Equal(t, "Replay detected: Nonce already used.", rejection.Reason)
	assert.Equal(t, 1, nonces.size())

	// same nonce under another service is independent
	assert.NoError(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 5}, in))
}

func TestReplayGuard_StaleTimestampRejectedRegardlessOfNonce(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	g := NewReplayGuard(nonces, WithClock(func() time.Time { return now }))

	for _, ts := range []int64{now.Unix() - 301, now.Unix() + 301} {
		in := newInspection("1.1.1.1", nil, replayHeaders(ts, "fresh-"+strconv.FormatInt(ts, 10)))
		err := g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in)
		assert.EqualError(t, err, "Request timestamp too old or in future.")
	}
	assert.Equal(t, 0, nonces.size())
	assert.Equal(t, 0, nonces.existsCalls)

	// exactly at the boundary is accepted
	in := newInspection("1.1.1.1", nil, replayHeaders(now.Unix()-300, "edge"))
	assert.NoError(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in))
}

func TestReplayGuard_ConfigurableMaxAge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	g := NewReplayGuard(newFakeNonceStore(), WithClock(func() time.Time { return now }), WithReplayMaxAge(time.Minute))

	in := newInspection("1.1.1.1", nil, replayHeaders(now.Unix()-61, "n"))
	assert.Error(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in))
}

func TestReplayGuard_MissingHeadersPass(t *testing.T) {
	nonces := newFakeNonceStore()
	g := NewReplayGuard(nonces)

	tests := []map[string]string{
		nil,
		{HeaderTimestamp: "1700000000"},
		{HeaderNonce: "abc"},
	}
	for _, headers := range tests {
		assert.NoError(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, newInspection("1.1.1.1", nil, headers)))
	}
	assert.Equal(t, 0, nonces.existsCalls)
}

func TestReplayGuard_GitHubDeliveryFallback(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	g := NewReplayGuard(nonces, WithClock(func() time.Time { return now }))

	headers := map[string]string{
		HeaderTimestamp:      strconv.FormatInt(now.Unix(), 10),
		HeaderGitHubDelivery: "72d3162e-cc78-11e3-81ab-4c9367dc0958",
	}
	require.NoError(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, newInspection("1.1.1.1", nil, headers)))

	nonces.mu.Lock()
	record, ok := nonces.records["1|72d3162e-cc78-11e3-81ab-4c9367dc0958"]
	nonces.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, now.Unix(), record.Timestamp)
	assert.Equal(t, now, record.CreatedAt)
}

func TestReplayGuard_InvalidTimestamp(t *testing.T) {
	g := NewReplayGuard(newFakeNonceStore())
	in := newInspection("1.1.1.1", nil, map[string]string{HeaderTimestamp: "yesterday", HeaderNonce: "n"})

	rejection, ok := AsRejection(g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in))
	require.True(t, ok)
	assert.Equal(t, "Invalid request timestamp.", rejection.Reason)
}

func TestReplayGuard_RaceOnInsert(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	g := NewReplayGuard(nonces, WithClock(func() time.Time { return now }))
	in := newInspection("1.1.1.1", nil, replayHeaders(now.Unix(), "raced"))

	require.NoError(t, g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in))

	nonces.hideExisting = true
	err := g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, in)
	assert.EqualError(t, err, "Replay detected: Race condition on nonce.")
}

func TestReplayGuard_StoreFailureIsNotRejection(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	nonces := newFakeNonceStore()
	nonces.insertErr = errors.New("disk full")
	g := NewReplayGuard(nonces, WithClock(func() time.Time { return now }))

	err := g.Inspect(context.Background(), models.ServiceConfig{ID: 1}, newInspection("1.1.1.1", nil, replayHeaders(now.Unix(), "n")))
	require.Error(t, err)
	_, ok := AsRejection(err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNonceStoreFailed)
}
