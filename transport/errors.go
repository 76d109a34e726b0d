package transport

import (
	"errors"
	"fmt"
)

// ErrAborted reports a transfer stopped by the abort-check hook. The
// connection loop treats it as a clean outcome, not a failure.
var ErrAborted = errors.New("transport: transfer aborted")

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeConnection indicates a connection-level failure (refused,
	// DNS, TLS, mid-stream drop, malformed URL).
	ErrCodeConnection ErrorCode = iota
	// ErrCodeStatus indicates the server answered with an error status.
	ErrCodeStatus
	// ErrCodeRedirect indicates too many redirects.
	ErrCodeRedirect
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeStatus:
		return "status"
	case ErrCodeRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Error is a structured transport error with classification.
type Error struct {
	// StatusCode is the HTTP status code, 0 when none was obtained.
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a connection-level error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:    ErrCodeConnection,
		Message: err.Error(),
		Err:     err,
	}
}

// NewStatusError creates an error for a non-success HTTP status.
func NewStatusError(statusCode int) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeStatus,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
	}
}

// StatusCode extracts the HTTP status code from a transport error, or 0
// when the error carries none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsAborted checks whether an error reports an abort-hook stop.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
