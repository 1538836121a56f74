package utils

import "github.com/google/uuid"

const maxTraceIDLength = 128

// TraceIDs issues the trace ids attached to every request log line and
// echoed back in the X-Trace-ID header.
type TraceIDs struct{}

func NewTraceIDs() *TraceIDs {
	return &TraceIDs{}
}

// New returns a time-ordered UUIDv7 so trace ids sort by arrival. A random
// UUIDv4 is used if the v7 clock source fails.
func (*TraceIDs) New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// AcceptTraceID reports whether a caller supplied trace id may be reused.
// Only short ids made of letters, digits and ".-_:" are kept, which keeps
// header and log injection out.
func AcceptTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
