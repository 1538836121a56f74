package workers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/metrics"
	"github.com/MKhiriev/integration-hub/internal/mock"
)

func TestNewNoncePruner_Defaults(t *testing.T) {
	p := NewNoncePruner(nil, 0, 0, nil, logger.Nop())

	assert.Equal(t, DefaultNoncePruneInterval, p.interval)
	assert.Equal(t, DefaultNonceRetention, p.retention)
}

func TestNoncePruner_Prune_DeletesOlderThanRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	nonces := mock.NewMockNonceRepository(ctrl)
	m := metrics.NewMetrics()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewNoncePruner(nonces, time.Minute, time.Hour, m, logger.Nop())
	p.now = func() time.Time { return now }

	nonces.EXPECT().DeleteOlderThan(gomock.Any(), now.Add(-time.Hour)).Return(int64(7), nil)

	p.prune(context.Background())

	expected := `
# HELP nonces_pruned_total Total number of expired nonce records deleted
# TYPE nonces_pruned_total counter
nonces_pruned_total 7
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "nonces_pruned_total"))
}

func TestNoncePruner_Prune_ErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	nonces := mock.NewMockNonceRepository(ctrl)
	p := NewNoncePruner(nonces, time.Minute, time.Hour, nil, logger.Nop())

	nonces.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

	assert.NotPanics(t, func() { p.prune(context.Background()) })
}

func TestNoncePruner_Run_PrunesUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	nonces := mock.NewMockNonceRepository(ctrl)
	p := NewNoncePruner(nonces, 5*time.Millisecond, time.Hour, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 100)
	nonces.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			calls <- struct{}{}
			return 0, nil
		}).MinTimes(2)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	<-calls
	<-calls
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop after cancellation")
	}
}
