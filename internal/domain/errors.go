package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the client core.
var (
	// ErrUnauthorized means the session credential was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput means the server rejected the request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNetwork means the request never produced an HTTP response.
	ErrNetwork = errors.New("network failure")
	// ErrNoSession means an authenticated call was attempted without a
	// stored session.
	ErrNoSession = errors.New("not logged in")
)

// APIError is the typed error surfaced for every failed REST call.
// Status carries the HTTP status code; 0 means the failure happened
// below HTTP (connection refused, timeout, DNS).
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// UserMessage returns the user-facing message without internal detail.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel, letting callers use errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError maps an HTTP status to a typed error carrying the
// best-effort message extracted from the response body.
func NewAPIError(status int, message string) *APIError {
	var sentinel error
	switch status {
	case 401, 403:
		sentinel = ErrUnauthorized
	case 404:
		sentinel = ErrNotFound
	case 400, 422:
		sentinel = ErrInvalidInput
	}
	return &APIError{
		Status:  status,
		Code:    fmt.Sprintf("HTTP_%d", status),
		Message: message,
		Err:     sentinel,
	}
}

// NewNetworkError wraps a transport-level failure as an APIError with
// status 0, distinguishable from any HTTP response.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Status:  0,
		Code:    "NETWORK_ERROR",
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %v", ErrNetwork, err),
	}
}

// IsUnauthorized reports whether err is an auth failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNetwork reports whether err never reached the server.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
