// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the integration hub.
//
//   - [ServiceRegistry] resolves service configurations by slug.
//   - [WebhookService] runs the inbound webhook ingress: resolve, firewall,
//     token check, decode and dispatch.
//   - [GatewayService] performs outbound calls through the transport gateway
//     with retries.
//   - [AuthService] issues and verifies operator tokens for the gateway API.
//   - [AppInfoService] reports build information.
//
// Handlers depend on these interfaces only; concrete types are unexported.
package service
