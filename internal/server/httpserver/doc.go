// Package httpserver provides the admin HTTP server for respkv.
//
// This package serves operational endpoints next to the RESP listener:
//
//   - server.go: HTTP server lifecycle
//   - router.go: route table and middleware chain
//   - middleware.go: request ID, access log, panic recovery
//   - handler/: health, readiness and status handlers
//
// /metrics is served from the Prometheus registry in internal/telemetry/metric.
package httpserver
