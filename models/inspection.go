package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// Inspection carries everything the firewall needs to know about a single
// inbound webhook request. It lives for the duration of one pipeline run and
// is never persisted.
//
// RawBody is captured exactly once by the HTTP layer. The JSON decoder and
// the HMAC guard both work from it, so the signature is always computed
// over the bytes the sender signed.
type Inspection struct {
	RemoteAddr string
	Header     http.Header
	RawBody    []byte

	// Payload is the decoded JSON object, nil when the body is empty or is
	// not a JSON object.
	Payload map[string]any

	// DecodeErr holds the JSON decoding error, if any. The firewall runs
	// regardless of it.
	DecodeErr error

	TraceID string
}

// HeaderValue returns the first value of the named header. Lookup is
// case-insensitive.
func (i *Inspection) HeaderValue(name string) string {
	if i == nil || i.Header == nil {
		return ""
	}
	return i.Header.Get(name)
}

// NewInspection captures a request for the firewall. body is kept as is and
// decoded once: Payload holds the JSON object, DecodeErr the reason it could
// not be decoded. An empty body leaves both nil.
func NewInspection(remoteAddr string, header http.Header, body []byte, traceID string) *Inspection {
	in := &Inspection{
		RemoteAddr: remoteAddr,
		Header:     header,
		RawBody:    body,
		TraceID:    traceID,
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return in
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		in.DecodeErr = err
		return in
	}
	if payload == nil {
		in.DecodeErr = errors.New("payload must be a JSON object")
		return in
	}
	in.Payload = payload
	return in
}
