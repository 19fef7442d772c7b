// Package main provides the entry point for respkv-server.
//
// The server provides:
//
//   - a RESP2 listener answering PING, ECHO, SET [PX ms] and GET
//   - an optional Unix socket serving the same commands to local clients
//   - an optional admin HTTP listener with /health, /ready, /status and /metrics
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server --config /path/to/config.yaml
//	respkv-server --addr 0.0.0.0:6379 --log-level debug
//
// Configuration is layered: defaults, the config file, RESPKV_* environment
// variables, then flags. Changes to the config file are watched and the log
// level is applied without a restart.
package main
