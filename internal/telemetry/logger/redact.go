// Package logger provides structured logging for respkv.
package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Attribute keys whose string values are never written verbatim.
// Stored values are user data and may be large or confidential.
var sensitiveKeyPatterns = []string{
	"value",
	"password",
	"secret",
	"credential",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive replaces sensitive string attributes with a placeholder
// that keeps only the original length.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, RedactString(a.Value.String()))
		}
		return a
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// RedactString masks a value, keeping its byte length as a hint.
func RedactString(value string) string {
	if value == "" {
		return ""
	}
	return redactedValue + "(" + strconv.Itoa(len(value)) + " bytes)"
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
