// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport executes outbound calls to configured services.
//
// A [Driver] exists per protocol (HTTP, AMQP, SOAP). Every driver turns the
// outcome of a call into a [models.TransportResult]: drivers never panic and
// never return errors, a failed call is an unsuccessful result with a
// protocol-specific message. The [Gateway] routes a call to the driver
// registered for the service's transport type.
package transport
