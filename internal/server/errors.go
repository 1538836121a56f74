// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// Errors returned by NewServer before anything starts listening.
var (
	// errNoIngressHandler means there is no HTTP handler to serve the
	// webhook ingress and gateway routes.
	errNoIngressHandler = errors.New("no webhook ingress handler configured")
	errNoListenAddress  = errors.New("http listen address is empty")
)
