package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class. Every error returned by the client
// wraps exactly one of these, so callers can branch with errors.Is without
// inspecting status codes themselves.
var (
	// ErrUnauthorized indicates a 401 response; the stored credential has
	// already been cleared by the time the caller sees this.
	ErrUnauthorized = errors.New("apiclient: unauthorized")

	// ErrForbidden indicates a 403 response (role/permission mismatch)
	ErrForbidden = errors.New("apiclient: forbidden")

	// ErrNotFound indicates a 404 response
	ErrNotFound = errors.New("apiclient: not found")

	// ErrValidation indicates a 422 response with a server-side validation message
	ErrValidation = errors.New("apiclient: validation failed")

	// ErrRateLimited indicates a 429 response; this layer does not retry
	ErrRateLimited = errors.New("apiclient: rate limited")

	// ErrServer indicates a 5xx response
	ErrServer = errors.New("apiclient: server error")

	// ErrTimeout indicates the request exceeded the configured timeout
	ErrTimeout = errors.New("apiclient: request timed out")

	// ErrOffline indicates no response was received and the client is offline
	ErrOffline = errors.New("apiclient: client is offline")

	// ErrNetwork indicates a transport-level failure with no HTTP response
	ErrNetwork = errors.New("apiclient: network error")

	// ErrInvalidResponse indicates a response body that could not be decoded
	ErrInvalidResponse = errors.New("apiclient: invalid server response")
)

// Error is the classified failure returned for every unsuccessful request.
// It wraps the sentinel matching its class, carries the HTTP status code when
// a response was received (zero otherwise), and preserves any server-provided
// message.
type Error struct {
	StatusCode int
	Message    string
	sentinel   error
	cause      error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%v: %s", e.sentinel, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("%v: %v", e.sentinel, e.cause)
	default:
		return e.sentinel.Error()
	}
}

func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func newError(sentinel error, status int, message string, cause error) *Error {
	return &Error{
		StatusCode: status,
		Message:    message,
		sentinel:   sentinel,
		cause:      cause,
	}
}
