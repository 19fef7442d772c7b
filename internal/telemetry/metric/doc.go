// Package metric provides Prometheus metrics for respkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, metric definitions and the HTTP handler
//   - collector.go: custom collector reading live store statistics
//
// Metrics include:
//
//   - Commands processed, by command name
//   - Command latency histograms
//   - Open and accepted connections
//   - Protocol errors and lazily expired keys
//   - Keys currently held by the store
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
