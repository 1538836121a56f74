// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// methodNotAllowed returns the router's MethodNotAllowed handler.
//
// Webhook senders calling the ingress with anything but POST get a 405 with
// the usual JSON body and an Allow header, so a misconfigured sender can see
// what went wrong. Every other route answers 404 instead of 405 to avoid
// leaking which methods exist.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(methodNotAllowed("/webhook"))
func methodNotAllowed(webhookPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != webhookPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Allow", http.MethodPost)
		writeWebhookResponse(w, r, http.StatusMethodNotAllowed, "Method Not Allowed. Use POST.")
	}
}
