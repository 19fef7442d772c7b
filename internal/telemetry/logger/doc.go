// Package logger provides structured logging for respkv.
//
// This package wraps log/slog:
//
//   - logger.go: handler configuration, level control, file rotation
//   - context.go: context-aware logging with connection IDs
//   - redact.go: masking of stored values and secrets
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level changes (config reload)
//   - Optional rotating log file (lumberjack)
//   - Automatic redaction of value payloads
package logger
