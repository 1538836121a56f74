// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package firewall implements the inbound request firewall: an ordered set
// of guards that inspect a webhook delivery before any payload handling
// takes place.
//
// The default pipeline runs, in this order:
//
//  1. [IPWhitelistGuard] - remote address against the service whitelist;
//  2. [RateLimitGuard]   - fixed-window quota per service;
//  3. [HMACGuard]        - signature over the raw request body;
//  4. [ReplayGuard]      - timestamp freshness and nonce uniqueness.
//
// Cheap checks come first so a blocked address never consumes rate quota and
// an unsigned request never writes a nonce. Guards report a blocked request
// with a [*Rejection]; any other error is an infrastructure failure.
package firewall
