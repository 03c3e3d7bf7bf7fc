// Package httpx provides shared support for HTTP API clients: typed
// transport errors, structured diagnostic logging, in-memory metrics and
// redaction helpers.
package httpx

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of transport error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeNetwork
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeNetwork:
		return "network error"
	default:
		return "unknown error"
	}
}

// Error represents a transport-level failure with additional context.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Provider   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type.String(), e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Type.String(), e.Message)
}

// Is implements error equality checking for errors.Is: two Errors match
// when their types match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrTypeOf extracts the ErrorType from an error chain, returning
// ErrTypeUnknown for errors that are not *Error.
func ErrTypeOf(err error) ErrorType {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.Type
	}
	return ErrTypeUnknown
}

// ClassifyStatus maps an HTTP status code to a typed error. Useful for
// explaining non-2xx responses that the client surfaces without failing.
func ClassifyStatus(provider string, statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}

	errType := ErrTypeUnknown
	switch statusCode {
	case 401, 403:
		errType = ErrTypeAuthentication
	case 429:
		errType = ErrTypeRateLimit
	case 400:
		errType = ErrTypeInvalidRequest
	case 500, 503:
		errType = ErrTypeServiceUnavailable
	}

	return &Error{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Provider:   provider,
	}
}
