package firewall

import (
	"errors"
	"fmt"
)

// RejectionKind tells a request blocked by policy apart from a service whose
// firewall settings cannot be applied.
type RejectionKind string

const (
	KindFirewall      RejectionKind = "firewall"
	KindConfiguration RejectionKind = "configuration"
)

// Rejection is returned by a guard that blocks a request. Error returns only
// the human-readable reason, which is safe to send back to the caller.
type Rejection struct {
	Kind   RejectionKind
	Guard  string
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func reject(guard, format string, args ...any) *Rejection {
	return &Rejection{Kind: KindFirewall, Guard: guard, Reason: fmt.Sprintf(format, args...)}
}

func misconfigured(guard, format string, args ...any) *Rejection {
	return &Rejection{Kind: KindConfiguration, Guard: guard, Reason: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a [*Rejection].
func AsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}

// Infrastructure failures raised while a guard runs.
var (
	ErrCounterFailed    = errors.New("rate counter failure")
	ErrNonceStoreFailed = errors.New("nonce store failure")
)
