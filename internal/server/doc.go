// Package server runs the hub's HTTP server and background workers.
//
// It provides startup, signal handling, and graceful shutdown: a SIGTERM,
// SIGINT or SIGQUIT stops the workers and drains in-flight requests.
package server
