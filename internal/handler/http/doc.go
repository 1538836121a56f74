// Package http implements the HTTP transport layer of the hub.
//
// It exposes the webhook ingress, the operator gateway API, the metrics
// endpoint and a health check. Request tracing, access logging and operator
// authentication are handled in this package before requests are delegated
// to the service layer.
package http
