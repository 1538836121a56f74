package firewall

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/integration-hub/internal/store"
	"github.com/MKhiriev/integration-hub/models"
)

// fakeNonceStore is an in-memory NonceRepository with an atomic
// insert-if-absent.
type fakeNonceStore struct {
	mu      sync.Mutex
	records map[string]models.NonceRecord

	existsErr error
	insertErr error
	// hideExisting makes Exists always report false, simulating a
	// concurrent request that inserted between Exists and Insert.
	hideExisting bool

	existsCalls int
	insertCalls int
}

func newFakeNonceStore() *fakeNonceStore {
	return &fakeNonceStore{records: make(map[string]models.NonceRecord)}
}

func nonceKey(serviceID int64, nonce string) string {
	return fmt.Sprintf("%d|%s", serviceID, nonce)
}

func (f *fakeNonceStore) Exists(_ context.Context, serviceID int64, nonce string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if f.hideExisting {
		return false, nil
	}
	_, ok := f.records[nonceKey(serviceID, nonce)]
	return ok, nil
}

func (f *fakeNonceStore) Insert(_ context.Context, record models.NonceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	key := nonceKey(record.ServiceID, record.Nonce)
	if _, ok := f.records[key]; ok {
		return store.ErrNonceAlreadyExists
	}
	f.records[key] = record
	return nil
}

func (f *fakeNonceStore) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, r := range f.records {
		if r.CreatedAt.Before(before) {
			delete(f.records, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeNonceStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// failingCounter returns err from every call.
type failingCounter struct {
	err error
}

func (c failingCounter) Count(context.Context, string) (int64, error) { return 0, c.err }
func (c failingCounter) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, c.err
}

// racingCounter reports a free slot on Count but returns a value above the
// limit on Increment.
type racingCounter struct {
	incrementTo int64
}

func (c racingCounter) Count(context.Context, string) (int64, error) { return 0, nil }
func (c racingCounter) Increment(context.Context, string, time.Duration) (int64, error) {
	return c.incrementTo, nil
}

// fixedClock returns a settable clock.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newInspection(remote string, body []byte, headers map[string]string) *models.Inspection {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &models.Inspection{RemoteAddr: remote, Header: h, RawBody: body}
}
