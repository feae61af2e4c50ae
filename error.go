package knowbase

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are used to classify failures at the domain level. The fs, crawl and
// index packages translate low-level errors into these codes so callers (and
// tests) can branch on the kind of failure rather than on message strings.
const (
	ECONFLICT    = "conflict"    // duplicate resource (e.g. source URL already added)
	ECORRUPT     = "corrupt"     // unreadable manifest, page, or index file
	EINTERNAL    = "internal"    // unexpected internal error
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // knowledge base or source does not exist
	ENOTINDEXED  = "not_indexed" // search against a knowledge base with no index
	EUNAVAILABLE = "unavailable" // upstream unreachable (seed fetch, embedding provider)
)

// Error represents an application-specific error. Application errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable explanation of the failure.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("knowbase error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper to construct an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
