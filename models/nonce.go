package models

import "time"

// NonceRecord marks a (service, nonce) pair as used. It is created by the
// replay guard on first sight of a nonce and never updated.
type NonceRecord struct {
	ServiceID int64
	Nonce     string
	// Timestamp is the sender supplied request timestamp (unix seconds).
	Timestamp int64
	CreatedAt time.Time
}
