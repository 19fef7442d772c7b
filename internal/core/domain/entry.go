// Package domain defines the core domain models for respkv.
package domain

import "time"

// Entry is a stored value with an optional absolute expiry.
//
// A zero ExpiresAt means the entry never expires. Entries are held by value
// inside the store; the string payload is immutable, so handing a copy of an
// Entry to a caller never aliases store state.
type Entry struct {
	Value     string
	ExpiresAt time.Time
}

// NewEntry creates an entry that never expires.
func NewEntry(value string) Entry {
	return Entry{Value: value}
}

// NewEntryWithTTL creates an entry expiring ttl after now.
func NewEntryWithTTL(value string, now time.Time, ttl time.Duration) Entry {
	return Entry{Value: value, ExpiresAt: now.Add(ttl)}
}

// HasExpiry reports whether the entry carries an expiry time.
func (e Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// IsExpiredAt reports whether the entry is logically absent at now.
// An entry is still live at exactly its expiry instant.
func (e Entry) IsExpiredAt(now time.Time) bool {
	return e.HasExpiry() && now.After(e.ExpiresAt)
}
