// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TransportResult is the normalised outcome of one outbound call, whatever
// protocol carried it. Exactly one of Response and Error is non-nil.
type TransportResult struct {
	Success  bool    `json:"success"`
	Response *string `json:"response"`
	Error    *string `json:"error"`
	// Latency is the wall-clock duration of the call in milliseconds.
	Latency  int64 `json:"latency"`
	Attempts int   `json:"attempts"`
	// HTTPCode is the HTTP status, 0 for AMQP, 200/500 for SOAP.
	HTTPCode int `json:"http_code"`
}

// SuccessResult builds a successful result measured from start.
func SuccessResult(response string, start time.Time, attempts, code int) TransportResult {
	return TransportResult{
		Success:  true,
		Response: &response,
		Latency:  time.Since(start).Milliseconds(),
		Attempts: attempts,
		HTTPCode: code,
	}
}

// ErrorResult builds a failed result measured from start.
func ErrorResult(message string, start time.Time, attempts, code int) TransportResult {
	return TransportResult{
		Success:  false,
		Error:    &message,
		Latency:  time.Since(start).Milliseconds(),
		Attempts: attempts,
		HTTPCode: code,
	}
}

// CallRequest is an outbound call issued through the gateway API.
type CallRequest struct {
	Endpoint string         `json:"endpoint"`
	Method   string         `json:"method"`
	Payload  map[string]any `json:"payload"`
}
