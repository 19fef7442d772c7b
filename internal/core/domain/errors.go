// Package domain defines the core domain models for respkv.
package domain

import "fmt"

// DomainError represents a client-visible error with a RESP error prefix.
//
// Code is the first word of the RESP error line (for example "ERR" or
// "WRONGTYPE"); Message is the rest of it.
type DomainError struct {
	Code    string // RESP error prefix (e.g., "ERR")
	Message string // Human-readable message
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// RESP returns the text of the RESP error line, without the leading '-'.
func (e *DomainError) RESP() string {
	return e.Code + " " + e.Message
}

var (
	// ErrUnknownCommand is returned for unknown command names and for
	// recognized names used with an unsupported number of arguments.
	ErrUnknownCommand = NewDomainError("ERR", "unknown command")
)
