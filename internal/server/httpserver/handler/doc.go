// Package handler provides HTTP request handlers for respkv.
//
// Routes:
//
//   - GET /health: liveness
//   - GET /ready: readiness (503 until the RESP listener is up)
//   - GET /status: version, uptime, key and connection counts
//
// Responses use the Response envelope.
package handler
