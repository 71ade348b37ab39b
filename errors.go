package paylink

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind identifies one of the closed set of error kinds returned by the client.
// Its string value is the stable machine-readable error code.
type Kind string

// Error kinds.
const (
	// KindValidation is raised client-side, before any network attempt.
	KindValidation Kind = "VALIDATION_ERROR"

	// KindAuthentication is raised for HTTP 401 responses.
	KindAuthentication Kind = "AUTHENTICATION_ERROR"

	// KindRateLimit is raised for HTTP 429 responses.
	KindRateLimit Kind = "RATE_LIMIT_ERROR"

	// KindAPI covers every other failure. Status code 0 means no response was received.
	KindAPI Kind = "API_ERROR"
)

// Sentinel errors, one per kind. Every *Error unwraps to the sentinel of its kind,
// so callers can branch with errors.Is(err, paylink.ErrRateLimit).
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrRateLimit      = errors.New("rate limit error")
	ErrAPI            = errors.New("api error")
)

// StatusNoResponse is the status code carried by KindAPI errors when the
// transport never received a response (DNS, refused connection, timeout).
const StatusNoResponse = 0

// Error is the single error type returned by every operation of the client.
// Switch on Kind to handle specific failures. Errors are immutable once created.
type Error struct {
	kind          Kind
	message       string
	statusCode    int
	details       any
	retryAfter    time.Duration
	hasRetryAfter bool
	cause         error
}

// NewValidationError creates a KindValidation error. details may be nil.
func NewValidationError(message string, details any) *Error {
	return &Error{kind: KindValidation, message: message, details: details}
}

// NewAuthenticationError creates a KindAuthentication error with status 401.
func NewAuthenticationError(message string) *Error {
	return &Error{kind: KindAuthentication, message: message, statusCode: http.StatusUnauthorized}
}

// NewRateLimitError creates a KindRateLimit error with status 429.
// retryAfterSeconds is nil when the server sent no usable hint.
func NewRateLimitError(message string, retryAfterSeconds *int) *Error {
	e := &Error{kind: KindRateLimit, message: message, statusCode: http.StatusTooManyRequests}
	if retryAfterSeconds != nil {
		e.retryAfter = time.Duration(*retryAfterSeconds) * time.Second
		e.hasRetryAfter = true
	}
	return e
}

// NewAPIError creates a KindAPI error. details may be nil.
func NewAPIError(message string, statusCode int, details any) *Error {
	return &Error{kind: KindAPI, message: message, statusCode: statusCode, details: details}
}

// newNetworkError creates the KindAPI error for a transport failure.
// The cause stays reachable through errors.Is/As (e.g. context.Canceled).
func newNetworkError(cause error) *Error {
	return &Error{
		kind:       KindAPI,
		message:    networkErrorMessage,
		statusCode: StatusNoResponse,
		details:    map[string]any{"originalError": cause.Error()},
		cause:      cause,
	}
}

// Kind returns the error discriminant.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the stable machine-readable code, e.g. "RATE_LIMIT_ERROR".
func (e *Error) Code() string { return string(e.kind) }

// Message returns the human-readable message.
func (e *Error) Message() string { return e.message }

// StatusCode returns the HTTP status code, 0 for validation and network errors.
func (e *Error) StatusCode() int { return e.statusCode }

// Details returns auxiliary data: the decoded response body for API errors,
// {"originalError": ...} for network errors, or nil.
func (e *Error) Details() any { return e.details }

// RetryAfter returns the server's retry hint for rate-limit errors.
// ok is false when no parseable Retry-After header was received.
func (e *Error) RetryAfter() (d time.Duration, ok bool) {
	return e.retryAfter, e.hasRetryAfter
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.statusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.kind, e.statusCode, e.message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap exposes the kind sentinel and, for network errors, the transport cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func (e *Error) sentinel() error {
	switch e.kind {
	case KindValidation:
		return ErrValidation
	case KindAuthentication:
		return ErrAuthentication
	case KindRateLimit:
		return ErrRateLimit
	default:
		return ErrAPI
	}
}
